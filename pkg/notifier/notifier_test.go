package notifier

import (
	"testing"
)

type recordingSink struct {
	severities []string
	messages   []string
}

func (r *recordingSink) Notify(severity string, message string) {
	r.severities = append(r.severities, severity)
	r.messages = append(r.messages, message)
}

func TestMultiNotifier(t *testing.T) {
	t.Run("fans out to every sink", func(t *testing.T) {
		first := &recordingSink{}
		second := &recordingSink{}
		m := MultiNotifier{Sinks: []Notifier{first, second}}

		m.Notify(SEVERITY_WARNING, "survey save failed")

		for _, sink := range []*recordingSink{first, second} {
			if len(sink.messages) != 1 {
				t.Fatalf("expected one notification, got %d", len(sink.messages))
			}
			if sink.severities[0] != SEVERITY_WARNING || sink.messages[0] != "survey save failed" {
				t.Errorf("unexpected notification: %s %s", sink.severities[0], sink.messages[0])
			}
		}
	})

	t.Run("no sinks is a no-op", func(t *testing.T) {
		m := MultiNotifier{}
		m.Notify(SEVERITY_INFO, "nothing listening")
	})
}

func TestEmailNotifierSeverityFilter(t *testing.T) {
	cases := []struct {
		minSeverity string
		severity    string
		want        bool
	}{
		{SEVERITY_ERROR, SEVERITY_ERROR, true},
		{SEVERITY_ERROR, SEVERITY_WARNING, false},
		{SEVERITY_ERROR, SEVERITY_INFO, false},
		{SEVERITY_WARNING, SEVERITY_ERROR, true},
		{SEVERITY_WARNING, SEVERITY_WARNING, true},
		{SEVERITY_WARNING, SEVERITY_INFO, false},
		{"", SEVERITY_INFO, true},
	}

	for _, c := range cases {
		n := &EmailNotifier{config: EmailNotifierConfig{MinSeverity: c.minSeverity}}
		if got := n.shouldSend(c.severity); got != c.want {
			t.Errorf("min %q severity %q: expected %t, got %t", c.minSeverity, c.severity, got, c.want)
		}
	}
}
