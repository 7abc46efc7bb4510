package normalize

import (
	"sort"
	"strings"

	"methanewatch/internal/coerce"
)

// guessFloat finds the first key whose lowercased name contains every token
// and whose value parses as a number. Keys one nesting level down are scanned
// too; flare stack field names vary widely across reporting years.
func guessFloat(row map[string]any, tokens ...string) (float64, bool) {
	castFloat := func(v any) (any, bool) {
		f, ok := coerce.Float(v)
		return f, ok
	}
	if v, ok := guessScan(row, false, castFloat, tokens); ok {
		return v.(float64), true
	}
	if v, ok := guessScan(row, true, castFloat, tokens); ok {
		return v.(float64), true
	}
	return 0, false
}

func guessBool(row map[string]any, tokens ...string) (bool, bool) {
	castBool := func(v any) (any, bool) {
		b, ok := coerce.Bool(v)
		return b, ok
	}
	if v, ok := guessScan(row, false, castBool, tokens); ok {
		return v.(bool), true
	}
	if v, ok := guessScan(row, true, castBool, tokens); ok {
		return v.(bool), true
	}
	return false, false
}

func guessScan(row map[string]any, deep bool, cast func(any) (any, bool), tokens []string) (any, bool) {
	for _, key := range sortedKeys(row) {
		if deep {
			sub := asMap(row[key])
			if sub == nil {
				continue
			}
			for _, k := range sortedKeys(sub) {
				if keyMatches(k, tokens) {
					if out, ok := cast(sub[k]); ok {
						return out, true
					}
				}
			}
			continue
		}
		if keyMatches(key, tokens) {
			if out, ok := cast(row[key]); ok {
				return out, true
			}
		}
	}
	return nil, false
}

// sortedKeys fixes the scan order; plain map iteration would make the winner
// among several matching keys nondeterministic.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func keyMatches(key string, tokens []string) bool {
	k := strings.ToLower(key)
	for _, t := range tokens {
		if !strings.Contains(k, strings.ToLower(t)) {
			return false
		}
	}
	return true
}

func flareHasFlowMonitor(row map[string]any) bool {
	if b, ok := guessBool(row, "flow", "monitor"); ok && b {
		return true
	}
	if b, ok := guessBool(row, "continuous", "flow"); ok && b {
		return true
	}
	if m, ok := stringOf(row, "FlowMeasurementMethod"); ok {
		return strings.Contains(strings.ToLower(m), "continuous")
	}
	return false
}

func flareHasGasAnalyzer(row map[string]any) bool {
	if b, ok := guessBool(row, "gas", "analyzer"); ok && b {
		return true
	}
	if m, ok := stringOf(row, "CompositionMeasurementMethod", "GasCompositionMethod"); ok {
		return strings.Contains(strings.ToLower(m), "analyzer")
	}
	return false
}

func aggregateFlareStacks(raw RawRecord) *FlareStacks {
	rows := raw.rows(SectionFlareStackRows)
	if len(rows) == 0 {
		return nil
	}

	out := &FlareStacks{NumStacks: len(rows)}
	var vols, effs, moleFracs, ch4s meanAcc
	ch4Sum := 0.0
	ch4Seen := false

	for _, row := range rows {
		fm := flareHasFlowMonitor(row)
		ga := flareHasGasAnalyzer(row)
		if fm {
			out.WithFlowMonitor++
		}
		if ga {
			out.WithGasAnalyzer++
		}
		if fm || ga {
			out.WithMonitorOrAnalyzer++
		}

		if vol, ok := floatOf(row, "GasSentToFlare"); ok {
			vols.add(vol)
		} else if vol, ok := guessFloat(row, "average", "gas", "flare"); ok {
			vols.add(vol)
		}
		if eff, ok := floatOf(row, "FlareCombustionEfficiency"); ok {
			effs.add(eff)
		} else if eff, ok := guessFloat(row, "efficiency"); ok {
			effs.add(eff)
		}
		if mf, ok := floatOf(row, "FlareFeedGasCH4MoleFraction"); ok {
			moleFracs.add(mf)
		} else if mf, ok := guessFloat(row, "mole", "fraction", "methane"); ok {
			moleFracs.add(mf)
		}

		ch4, ok := floatOf(row, "Ch4Emissions")
		if !ok {
			ch4, ok = guessFloat(row, "methane", "emissions")
		}
		if ok {
			ch4s.add(ch4)
			ch4Sum += ch4
			ch4Seen = true
		}
	}

	out.AvgGasToFlare = vols.value()
	out.AvgCombustionEfficiency = effs.value()
	out.AvgCH4MoleFraction = moleFracs.value()
	out.AvgCH4PerStack = ch4s.value()
	if ch4Seen {
		out.TotalCH4MT = &ch4Sum
	}
	return out
}
