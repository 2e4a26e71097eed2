package yahoo

import (
	"fmt"

	"github.com/wonny/twdiff/internal/marketdata"
)

func errNoData(reason string) error {
	return fmt.Errorf("yahoo: %s: %w", reason, marketdata.ErrNoData)
}
