package background

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownWaitsForTasks(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	bg := New(log)

	var done int32
	release := make(chan struct{})
	bg.Go(func() error {
		<-release
		atomic.StoreInt32(&done, 1)
		return nil
	})

	close(release)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, bg.Shutdown(ctx))
	assert.Equal(t, int32(1), atomic.LoadInt32(&done))
}

func TestShutdownTimesOut(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	bg := New(log)

	release := make(chan struct{})
	defer close(release)
	bg.Go(func() error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, bg.Shutdown(ctx))
}

func TestTaskFailureIsContained(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	bg := New(log)

	bg.Go(func() error { return errors.New("upload failed") })
	bg.Go(func() error { panic("boom") })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, bg.Shutdown(ctx))
}
