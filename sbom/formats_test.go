package sbom_test

import (
	"errors"
	"testing"

	"github.com/spdxbridge/sdg/hamlet"
	"github.com/spdxbridge/sdg/sbom"
)

func TestParseFormatAcceptsCanonicalNamesAndAliases(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	for _, label := range []string{"tag-value", "tagvalue", "tv", "spdx", "TAG-VALUE", " Tv "} {
		format, err := sbom.ParseFormat(label)
		must_be.Nil(err)
		must_be.Equal(sbom.TagValue, format)
	}
	for _, label := range []string{"rdf", "rdf-xml", "RDF"} {
		format, err := sbom.ParseFormat(label)
		must_be.Nil(err)
		must_be.Equal(sbom.RDF, format)
	}
}

func TestParseFormatRejectsUnknownLabels(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	for _, label := range []string{"", "yaml", "json", "tag value", "cyclonedx"} {
		format, err := sbom.ParseFormat(label)
		wont_be.Nil(err)
		must_be.True(errors.Is(err, sbom.ErrInvalidRequest))
		must_be.Contain("tag-value, rdf", err.Error())
		must_be.Equal(false, format.Known())
	}
}

func TestFormatsCarryTheDelegateVocabulary(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	must_be.Equal("tv", sbom.TagValue.Flag)
	must_be.Equal(".spdx", sbom.TagValue.Extension)
	must_be.Equal("text/spdx", sbom.TagValue.MediaType)
	must_be.Text("tag-value", sbom.TagValue)

	must_be.Equal("rdf", sbom.RDF.Flag)
	must_be.Equal(".rdf", sbom.RDF.Extension)
	must_be.Equal("application/rdf+xml", sbom.RDF.MediaType)
	must_be.Text("rdf", sbom.RDF)
}

func TestKnownFormatsAreAClosedSet(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	must_be.Equal(2, len(sbom.KnownFormats()))
	must_be.Equal("tag-value, rdf", sbom.SupportedFormatNames())
}
