package cloud

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/pathlib"
	"github.com/spdxbridge/sdg/pretty"
	"github.com/spdxbridge/sdg/settings"
)

// progressWriter wraps an io.Writer to track progress and update progress bar
type progressWriter struct {
	writer      io.Writer
	progressBar pretty.ProgressIndicator
	written     int64
}

func (pw *progressWriter) Write(p []byte) (n int, err error) {
	n, err = pw.writer.Write(p)
	pw.written += int64(n)
	if pw.progressBar != nil {
		pw.progressBar.Update(pw.written, "")
	}
	return n, err
}

// Download fetches a URL into a file, hashing the content on the way
// through. The caller owns digest verification; this reports what the
// content summed to.
func Download(url, filename string) (string, error) {
	common.Timeline("start %s download", filename)
	defer common.Timeline("done %s download", filename)

	if pathlib.Exists(filename) {
		err := os.Remove(filename)
		if err != nil {
			return "", err
		}
	}

	client := &http.Client{Transport: settings.Global.ConfiguredHttpTransport()}
	request, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", err
	}
	request.Header.Add("Accept", "application/octet-stream")
	request.Header.Add("User-Agent", common.UserAgent())
	response, err := client.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", fmt.Errorf("Downloading %q failed, reason: %q!", url, response.Status)
	}

	out, err := pathlib.Create(filename)
	if err != nil {
		return "", err
	}
	defer out.Close()

	digest := sha256.New()

	common.Debug("Downloading %s <%s> -> %s", url, response.Status, filename)

	// Dashboard for large downloads, plain progress bar for small ones.
	contentLength := response.ContentLength
	useDashboard := contentLength > 1024*1024 && pretty.Interactive

	var dashboard pretty.Dashboard
	var progressBar pretty.ProgressIndicator

	if useDashboard {
		dashboard = pretty.NewDownloadDashboard(filename, contentLength)
		dashboard.Start()
		defer dashboard.Stop(true)
	} else if contentLength > 0 && pretty.Interactive {
		progressBar = pretty.NewProgressBar(fmt.Sprintf("Downloading %s", filename), contentLength)
		progressBar.Start()
		defer progressBar.Stop(true)
	}

	sink := &progressWriter{
		writer:      io.MultiWriter(out, digest),
		progressBar: progressBar,
	}

	bytecount := int64(0)
	if useDashboard {
		// manual copy loop, so the dashboard sees every chunk
		buf := make([]byte, 32*1024)
		for {
			nr, er := response.Body.Read(buf)
			if nr > 0 {
				nw, ew := sink.Write(buf[0:nr])
				if nw < 0 || nr < nw {
					nw = 0
					if ew == nil {
						ew = fmt.Errorf("invalid write result")
					}
				}
				bytecount += int64(nw)
				if ew != nil {
					err = ew
					break
				}
				if nr != nw {
					err = io.ErrShortWrite
					break
				}
				dashboard.Update(pretty.DashboardState{
					Progress: float64(bytecount) / float64(contentLength),
				})
			}
			if er != nil {
				if er != io.EOF {
					err = er
				}
				break
			}
		}
		if err != nil {
			dashboard.Stop(false)
			return "", err
		}
	} else {
		bytecount, err = io.Copy(sink, response.Body)
		if err != nil {
			if progressBar != nil {
				progressBar.Stop(false)
			}
			return "", err
		}
	}

	common.Timeline("downloaded %d bytes to %s", bytecount, filename)

	err = out.Sync()
	if err != nil {
		return "", err
	}

	sum := fmt.Sprintf("%02x", digest.Sum(nil))
	common.Debug("%q SHA256 sum: %s", filename, sum)
	return sum, nil
}
