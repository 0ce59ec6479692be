// Package http provides the HTTP client used to fetch the dataset archive.
//
// The Client in this package handles:
//   - Streaming the multi-gigabyte ICBHI archive to disk
//   - Progress tracking during the download
//   - Remote file size retrieval via HEAD requests
//
// # Basic Usage
//
//	client := http.NewClient()
//
//	client.DownloadFile(ctx, archiveURL, archivePath, func(written, total int64) {
//	    fmt.Printf("%.1f%%\n", float64(written)/float64(total)*100)
//	})
//
// Failures propagate unwrapped; the caller decides whether to retry.
package http
