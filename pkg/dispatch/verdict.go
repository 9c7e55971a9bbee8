package dispatch

// RunVerdict drives files through a freshly built Dispatcher to
// completion, applying spec.md §4.I's caller policy: an Unsat result
// short-circuits with verdict (expectedSat == false), and Done (all
// dispatched work satisfied) yields verdict (expectedSat == true).
func RunVerdict(runner string, machines []string, files []string, expectedSat bool) (bool, error) {
	d := New(runner, machines)

	for _, f := range files {
		d.Dispatch(f, "")
	}

	for {
		outcome, err := d.Clear()
		if err != nil {
			d.Kill()
			_ = d.Wait()

			return false, err
		}

		switch outcome {
		case Unsat:
			d.Kill()
			_ = d.Wait()

			return !expectedSat, nil

		case Done:
			return expectedSat, nil
		}
	}
}
