package notify_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/compassq/internal/model"
	"github.com/slok/compassq/internal/notify"
	"github.com/slok/compassq/internal/notify/notifymock"
)

func TestWriterNotifier(t *testing.T) {
	tests := map[string]struct {
		bell   bool
		run    func(n notify.Notifier)
		expOut string
	}{
		"Messages should be printed on their own line": {
			run: func(n notify.Notifier) {
				n.Notify(context.TODO(), "Quadrant limit reached (10). Clear room first.")
			},
			expOut: "Quadrant limit reached (10). Clear room first.\n",
		},

		"Feedback without bell should not print anything": {
			run: func(n notify.Notifier) {
				n.Feedback(context.TODO(), model.FeedbackRejection)
				n.Feedback(context.TODO(), model.FeedbackDestructive)
			},
			expOut: "",
		},

		"Feedback with bell should ring on negative signals only": {
			bell: true,
			run: func(n notify.Notifier) {
				n.Feedback(context.TODO(), model.FeedbackSuccess)
				n.Feedback(context.TODO(), model.FeedbackRejection)
				n.Feedback(context.TODO(), model.FeedbackDestructive)
			},
			expOut: "\a\a",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			var out bytes.Buffer
			n, err := notify.NewWriterNotifier(notify.WriterNotifierConfig{Out: &out, Bell: test.bell})
			require.NoError(err)

			test.run(n)
			assert.Equal(t, test.expOut, out.String())
		})
	}
}

func TestWriterNotifierRequiresWriter(t *testing.T) {
	_, err := notify.NewWriterNotifier(notify.WriterNotifierConfig{})
	assert.Error(t, err)
}

func TestMultiNotifier(t *testing.T) {
	ctx := context.TODO()
	m1 := notifymock.NewNotifier(t)
	m2 := notifymock.NewNotifier(t)
	for _, m := range []*notifymock.Notifier{m1, m2} {
		m.On("Notify", ctx, "msg").Once()
		m.On("Feedback", ctx, model.FeedbackSuccess).Once()
	}

	n := notify.Multi(m1, m2)
	n.Notify(ctx, "msg")
	n.Feedback(ctx, model.FeedbackSuccess)
}
