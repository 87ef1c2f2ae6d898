package workerpool

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_RunJobs(t *testing.T) {
	pool := New(5)
	defer pool.Stop()

	var jobs []Job
	var completed int32
	for i := 0; i < 15; i++ {
		jobs = append(jobs, func() error {
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&completed, 1)
			return nil
		})
	}

	pool.Add(jobs)
	require.NoError(t, pool.Wait())
	require.EqualValues(t, len(jobs), completed, "expected all jobs to be completed")
}

func Test_Reuse(t *testing.T) {
	pool := New(3)
	defer pool.Stop()

	var completed int32
	for round := 0; round < 4; round++ {
		var jobs []Job
		for i := 0; i < 7; i++ {
			jobs = append(jobs, func() error {
				atomic.AddInt32(&completed, 1)
				return nil
			})
		}
		pool.Add(jobs)
		require.NoError(t, pool.Wait())
		require.EqualValues(t, 7*(round+1), atomic.LoadInt32(&completed))
	}
}

func Test_FirstError(t *testing.T) {
	pool := New(2)
	defer pool.Stop()

	boom := errors.New("boom")
	pool.Add([]Job{
		func() error { return nil },
		func() error { return boom },
		func() error { return nil },
	})
	require.Equal(t, boom, pool.Wait())

	// errors are reset by Wait
	pool.Add([]Job{func() error { return nil }})
	require.NoError(t, pool.Wait())
}

func Test_StopWait(t *testing.T) {
	pool := New(5)

	var jobs []Job
	for i := 0; i < 15; i++ {
		jobs = append(jobs, func() error {
			time.Sleep(50 * time.Millisecond)
			return nil
		})
	}

	pool.Add(jobs)
	<-time.After(10 * time.Millisecond)
	pool.Stop()
	pool.Wait()
}
