// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"github.com/ava-labs/pdaledger/utils"
)

// PrintMetrics writes the client-side ledger counters and the fetch latency
// collected during this invocation.
func (h *Handler) PrintMetrics() error {
	families, err := h.registry.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		for _, m := range family.GetMetric() {
			labels := ""
			for _, label := range m.GetLabel() {
				labels += " " + label.GetName() + "=" + label.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				utils.Outf("{{cyan}}%s%s:{{/}} %.0f\n", family.GetName(), labels, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				hist := m.GetHistogram()
				utils.Outf(
					"{{cyan}}%s%s:{{/}} count=%d sum=%fs\n",
					family.GetName(),
					labels,
					hist.GetSampleCount(),
					hist.GetSampleSum(),
				)
			}
		}
	}
	return nil
}
