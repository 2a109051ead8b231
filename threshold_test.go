// FILE: lixenwraith/unilog/threshold_test.go
package unilog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func textEvent(text string, ts time.Time) *Event {
	return newTextEvent(nil, SeverityInfo, text, ts, 0)
}

func TestThresholdEveryNEvents(t *testing.T) {
	p := &Processor{Task: TaskFlush, Frequency: FrequencyEveryNEvents, Threshold: 3}

	var got []bool
	for i := 0; i < 6; i++ {
		got = append(got, p.thresholdReached(textEvent("x", day(1)), PostfixNone))
	}
	assert.Equal(t, []bool{false, false, true, false, false, true}, got)
}

func TestThresholdEveryNOctets(t *testing.T) {
	p := &Processor{Task: TaskFlush, Frequency: FrequencyEveryNOctets, Threshold: 10}

	assert.False(t, p.thresholdReached(textEvent("1234", day(1)), PostfixNone))
	assert.False(t, p.thresholdReached(textEvent("12345", day(1)), PostfixNone))
	assert.True(t, p.thresholdReached(textEvent("12", day(1)), PostfixNone))
	assert.Equal(t, uint64(0), p.counter)
	assert.True(t, p.thresholdReached(textEvent("a long payload", day(1)), PostfixNone))
}

func TestThresholdCalendar(t *testing.T) {
	p := &Processor{Task: TaskRotate, Frequency: FrequencyDayChanged}

	assert.True(t, p.thresholdReached(textEvent("first", day(1)), PostfixNone))
	assert.False(t, p.thresholdReached(textEvent("same day", day(1).Add(5*time.Hour)), PostfixNone))
	assert.True(t, p.thresholdReached(textEvent("next day", day(2)), PostfixNone))
	// Older events never trigger again
	assert.False(t, p.thresholdReached(textEvent("late", day(1)), PostfixNone))
}

func TestThresholdAutoFollowsPostfix(t *testing.T) {
	p := NewRotateProcessor(RotateDelete, 1, 10)

	assert.True(t, p.thresholdReached(textEvent("a", day(1)), PostfixHour))
	assert.False(t, p.thresholdReached(textEvent("b", day(1).Add(30*time.Minute)), PostfixHour))
	assert.True(t, p.thresholdReached(textEvent("c", day(1).Add(time.Hour)), PostfixHour))

	q := NewRotateProcessor(RotateDelete, 1, 10)
	assert.True(t, q.thresholdReached(textEvent("a", day(1)), PostfixMonth))
	assert.False(t, q.thresholdReached(textEvent("b", day(20)), PostfixMonth))
}

func TestShouldRunStartupOverrides(t *testing.T) {
	target := &Target{postfix: PostfixDay}
	p := &Processor{Task: TaskFlush, Frequency: FrequencyEveryNEvents, Threshold: 100, Options: OptionRunOnceAtStartup}

	assert.True(t, target.shouldRun(p, textEvent("a", day(1))))
	assert.False(t, target.shouldRun(p, textEvent("b", day(1))))

	target.state.set(flagRunOnStartup)
	assert.True(t, target.shouldRun(p, textEvent("c", day(1))))
}
