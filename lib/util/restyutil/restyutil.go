// Package restyutil records raw HTTP exchanges going through a resty
// client, for debugging scrapes against a live site.
package restyutil

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// Output receives one formatted exchange per completed request.
type Output interface {
	Write(id string, contents string)
}

// FilesystemOutput writes each exchange to its own file in a
// directory, wiping whatever a previous run left there.
type FilesystemOutput struct {
	directory string
}

func NewFilesystemOutput(dir string) FilesystemOutput {
	os.RemoveAll(dir)
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		panic(err)
	}
	return FilesystemOutput{directory: dir}
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id+".txt"), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write http exchange file", "id", id, "err", err)
	}
}

// RecordExchanges dumps every request/response pair on the client to
// out. A nil out makes this a no-op.
func RecordExchanges(client *resty.Client, out Output) {
	if out == nil {
		return
	}
	var counter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := fmt.Sprintf("%04d", atomic.AddUint64(&counter, 1))
		out.Write(id, formatExchange(res))
		return nil
	})
}

func formatHeaders(headers http.Header) string {
	var lines []string
	for key, values := range headers {
		for _, value := range values {
			lines = append(lines, key+": "+value)
		}
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

func formatExchange(res *resty.Response) string {
	var b strings.Builder

	fmt.Fprintf(&b, "---- REQUEST ----\n\n%s %s\n\n", res.Request.Method, res.Request.URL)
	if res.Request.RawRequest != nil {
		b.WriteString(formatHeaders(res.Request.RawRequest.Header))
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "---- RESPONSE ----\n\n%d\n\n", res.StatusCode())
	b.WriteString(formatHeaders(res.Header()))
	b.WriteString("\n\n")
	b.WriteString(res.String())

	return b.String()
}
