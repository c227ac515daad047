// Package datasource abstracts where dataset bytes come from. Loader
// failures surface here as errors and abort only the dataset that needed
// the source; the other dataset's pipeline keeps running.
package datasource

import (
	"context"
	"io"
)

// Source opens a readable stream of raw dataset bytes.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
