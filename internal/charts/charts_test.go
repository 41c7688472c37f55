package charts

import (
	"bytes"
	"testing"

	"venture-fund-lab/internal/domain"
	"venture-fund-lab/internal/engine"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func fixtureResult(t *testing.T) *domain.FundResult {
	t.Helper()
	result, err := engine.Run(domain.DefaultParameters(), domain.ScenarioConfigBase)
	if err != nil {
		t.Fatalf("engine.Run failed: %v", err)
	}
	return result
}

func assertPNG(t *testing.T, name string, data []byte, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s failed: %v", name, err)
	}
	if len(data) == 0 {
		t.Fatalf("%s produced no bytes", name)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Fatalf("%s output is not a PNG: % x", name, data[:4])
	}
}

func TestDistributionTimeline(t *testing.T) {
	result := fixtureResult(t)
	data, err := DistributionTimeline(result)
	assertPNG(t, "DistributionTimeline", data, err)
}

func TestDPICurve(t *testing.T) {
	result := fixtureResult(t)
	data, err := DPICurve(result)
	assertPNG(t, "DPICurve", data, err)
}

func TestStrategyMultiples(t *testing.T) {
	result := fixtureResult(t)
	data, err := StrategyMultiples(result)
	assertPNG(t, "StrategyMultiples", data, err)
}
