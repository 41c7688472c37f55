// Package idhash derives deterministic identifiers and seeds from domain
// values. The same inputs always hash to the same outputs, so repeated runs
// with identical parameters are reproducible and archived rows can be
// deduplicated by id.
package idhash

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"venture-fund-lab/internal/domain"
)

// ComputeRunSeed derives the RNG seed for a model run from the fund
// parameters. Parameters are canonicalized through JSON so that two
// structurally equal parameter sets always produce the same seed. The seed
// deliberately excludes the scenario: all three scenarios replay the same
// company draws with different multiple scales, which keeps downside, base,
// and upside ordered by construction.
func ComputeRunSeed(params domain.FundParameters) (int64, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return 0, fmt.Errorf("idhash: marshal parameters: %w", err)
	}

	sum := sha256.Sum256(raw)

	// Take the first 8 bytes as a big-endian signed integer.
	return int64(binary.BigEndian.Uint64(sum[:8])), nil
}

// ComputeOutcomeID derives a stable hex id for one simulated company outcome.
func ComputeOutcomeID(scenarioID string, kind domain.StrategyKind, companyIndex int) string {
	input := fmt.Sprintf("%s|%s|%d", scenarioID, kind, companyIndex)
	sum := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", sum)
}
