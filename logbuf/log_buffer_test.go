package logbuf_test

import (
	"fmt"
	"testing"

	"github.com/spdxbridge/sdg/hamlet"
	"github.com/spdxbridge/sdg/logbuf"
)

func TestCanCreateLogBuffer(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	sut := logbuf.NewLogBuffer(50)
	wont_be.Nil(sut)
	must_be.Equal(0, sut.Len())
	must_be.Nil(sut.Recent(5))
}

func TestBufferTrimsToCapacity(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	sut := logbuf.NewLogBuffer(10)
	for step := 0; step < 25; step++ {
		sut.Add(logbuf.LogInfo, "", fmt.Sprintf("line %d", step))
	}
	must_be.Equal(10, sut.Len())
	entries := sut.All()
	must_be.Equal("line 15", entries[0].Message)
	must_be.Equal("line 24", entries[9].Message)
}

func TestAddLineDetectsVerbosityMarkers(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	sut := logbuf.NewLogBuffer(10)
	sut.AddLine("[T] low level detail")
	sut.AddLine("[D] debugging detail")
	sut.AddLine("[N] normal detail")
	sut.AddLine("plain output")

	entries := sut.All()
	must_be.Equal(4, len(entries))
	must_be.Equal(logbuf.LogTrace, entries[0].Level)
	must_be.Equal("low level detail", entries[0].Message)
	must_be.Equal(logbuf.LogDebug, entries[1].Level)
	must_be.Equal(logbuf.LogInfo, entries[2].Level)
	must_be.Equal("normal detail", entries[2].Message)
	must_be.Equal(logbuf.LogInfo, entries[3].Level)
}

func TestAddLineDetectsContentLevels(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	sut := logbuf.NewLogBuffer(10)
	sut.AddLine("Traceback (most recent call last):")
	sut.AddLine("Warning: missing package metadata")
	sut.AddLine("something failed badly")

	stats := sut.Stats()
	must_be.Equal(3, stats.Total)
	must_be.Equal(2, stats.Errors)
	must_be.Equal(1, stats.Warns)
}

func TestAddLineDetectsSources(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	sut := logbuf.NewLogBuffer(10)
	sut.AddLine("delegate: scanning directory")
	sut.AddLine("journal: entry recorded")
	sut.AddLine("no source here")

	entries := sut.All()
	must_be.Equal("delegate", entries[0].Source)
	must_be.Equal("scanning directory", entries[0].Message)
	must_be.Equal("journal", entries[1].Source)
	must_be.Equal("", entries[2].Source)
}

func TestTailReturnsPlainMessages(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	sut := logbuf.NewLogBuffer(10)
	sut.AddLine("first")
	sut.AddLine("second")
	sut.AddLine("third")

	must_be.Equal([]string{"second", "third"}, sut.Tail(2))
	must_be.Equal([]string{"first", "second", "third"}, sut.Tail(99))
	must_be.Equal(0, len(sut.Tail(0)))
}

func TestClearEmptiesBuffer(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	sut := logbuf.NewLogBuffer(10)
	sut.AddLine("something")
	must_be.Equal(1, sut.Len())
	sut.Clear()
	must_be.Equal(0, sut.Len())
}

func TestOnChangeFires(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	sut := logbuf.NewLogBuffer(10)
	count := 0
	sut.SetOnChange(func() {
		count++
	})
	sut.AddLine("one")
	sut.AddLine("two")
	must_be.Equal(2, count)
}

func TestLineWriterSplitsLines(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	buffer := logbuf.NewLogBuffer(10)
	sut := logbuf.NewLineWriter(nil, buffer, "delegate")

	total, err := sut.Write([]byte("partial"))
	must_be.Nil(err)
	must_be.Equal(7, total)
	must_be.Equal(0, buffer.Len())

	_, err = sut.Write([]byte(" line\nsecond line\ntrailing"))
	must_be.Nil(err)
	must_be.Equal(2, buffer.Len())

	sut.Flush()
	must_be.Equal(3, buffer.Len())

	entries := buffer.All()
	must_be.Equal("partial line", entries[0].Message)
	must_be.Equal("delegate", entries[0].Source)
	must_be.Equal("second line", entries[1].Message)
	must_be.Equal("trailing", entries[2].Message)
}
