// FILE: lixenwraith/unilog/threshold.go
package unilog

// shouldRun decides whether p acts on evt and updates p's counter and stored value
func (t *Target) shouldRun(p *Processor, evt *Event) bool {
	run := p.thresholdReached(evt, t.postfix)

	if p.Options&OptionRunOnceAtStartup != 0 {
		p.Options &^= OptionRunOnceAtStartup
		run = true
	}
	if t.state.has(flagRunOnStartup) {
		run = true
	}
	return run
}

// thresholdReached evaluates the frequency of p; FrequencyAuto resolves through postfix
func (p *Processor) thresholdReached(evt *Event, postfix Postfix) bool {
	freq := p.Frequency
	if freq == FrequencyAuto {
		freq = postfix.unit()
	}

	switch freq {
	case FrequencyAlways:
		return true

	case FrequencyEveryNEvents:
		p.counter++
		if p.counter >= p.Threshold {
			p.counter = 0
			return true
		}
		return false

	case FrequencyEveryNOctets:
		p.counter += evt.size()
		if p.counter >= p.Threshold {
			p.counter = 0
			return true
		}
		return false

	case FrequencySecondChanged, FrequencyMinuteChanged, FrequencyHourChanged,
		FrequencyDayChanged, FrequencyWeekChanged, FrequencyMonthChanged, FrequencyYearChanged:
		v := unitValue(freq, evt.stamp)
		if p.value == 0 || v > p.value {
			p.value = v
			return true
		}
		return false
	}
	return false
}
