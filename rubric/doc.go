// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rubric loads the static event configuration: judges, seed participants
and the two section rubrics.

	ev, err := rubric.Load(cfg.EventFile) // "" selects the embedded event.yaml
	r, _ := ev.Rubric(models.SectionBestPaper)
	r.MaxTotal() // 25 for five criteria scored out of 5

The Event is read once at startup and passed by pointer to the scoring engine,
the exporter and the handlers. Nothing mutates it afterwards.
*/
package rubric
