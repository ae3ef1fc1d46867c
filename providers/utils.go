package providers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/9seconds/cartographer/maplib"
)

func flushResponse(resp io.ReadCloser) {
	io.Copy(io.Discard, resp) // nolint: errcheck
	resp.Close()
}

func decodeResponse(src io.Reader, target interface{}) error {
	if err := json.NewDecoder(bufio.NewReader(src)).Decode(target); err != nil {
		return fmt.Errorf("%w: %w", maplib.ErrMalformedResponse, err)
	}

	return nil
}
