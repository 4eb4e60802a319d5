package restyutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput map[string]string

func (m memoryOutput) Write(id string, contents string) {
	m[id] = contents
}

func TestDump(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-page", r.URL.Path)
		w.Write([]byte("<html>hi</html>"))
	}))
	defer server.Close()

	output := memoryOutput{}
	client := resty.New().SetBaseURL(server.URL)
	NewDump(output).Client(client)

	_, err := client.R().Get("/wiki/A")
	require.NoError(t, err)
	_, err = client.R().Get("/wiki/B")
	require.NoError(t, err)

	require.Len(t, output, 2)
	require.True(t, strings.HasPrefix(output["1"], "---- REQUEST ----\n\nGET "))
	require.Contains(t, output["1"], "X-Page: /wiki/A")
	require.Contains(t, output["2"], "<html>hi</html>")
}

func TestDumpWithTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	output := memoryOutput{}
	client := resty.New().SetBaseURL(server.URL).SetTimeout(5 * time.Second)
	NewDump(output).Client(client)

	_, err := client.R().Get("/wiki/A")
	require.NoError(t, err)
	_, err = client.R().SetBody(`{"q":"sword"}`).Post("/search")
	require.NoError(t, err)

	require.Len(t, output, 2)
	require.Contains(t, output["1"], "GET "+server.URL+"/wiki/A")
	require.Contains(t, output["2"], `{"q":"sword"}`)
}

func TestDumpSharedBetweenClients(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	}))
	defer server.Close()

	output := memoryOutput{}
	dump := NewDump(output)
	pages := resty.New().SetBaseURL(server.URL).SetTimeout(5 * time.Second)
	images := resty.New().SetBaseURL(server.URL).SetTimeout(5 * time.Second)
	dump.Client(pages)
	dump.Client(images)

	for i := 0; i < 2; i++ {
		_, err := pages.R().Get(fmt.Sprintf("/wiki/Page_%d", i))
		require.NoError(t, err)
		_, err = images.R().Get(fmt.Sprintf("/images/%d.png", i))
		require.NoError(t, err)
	}

	require.Len(t, output, 4)
	require.Contains(t, output["1"], "/wiki/Page_0")
	require.Contains(t, output["2"], "/images/0.png")
	require.Contains(t, output["3"], "/wiki/Page_1")
	require.Contains(t, output["4"], "/images/1.png")
}

func TestDumpWithoutOutput(t *testing.T) {
	client := resty.New()
	NewDump(nil).Client(client)

	var dump *Dump
	dump.Client(client)
}

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dump")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale.txt"), []byte("old"), 0644))

	output, err := NewFilesystemOutput(dir)
	require.NoError(t, err)
	output.Write("1", "message")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	contents, err := os.ReadFile(filepath.Join(dir, "1.txt"))
	require.NoError(t, err)
	require.Equal(t, "message", string(contents))
}
