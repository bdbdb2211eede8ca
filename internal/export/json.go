package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kressler/fast-containers/internal/sampler"
)

// WriteRawJSON archives the full per-configuration result sequences
// verbatim, for archival or re-aggregation.
func WriteRawJSON(path string, rs *sampler.ResultSet) error {
	data, err := json.MarshalIndent(rs.Map(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal raw results: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write raw JSON file: %w", err)
	}
	return nil
}
