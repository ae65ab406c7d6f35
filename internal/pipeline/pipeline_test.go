package pipeline

import (
	"context"
	"errors"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shStage(name, script string) Stage {
	return Stage{Name: name, Path: "sh", Args: []string{"-c", script}}
}

func TestRun_ConnectsStages(t *testing.T) {
	res, err := Run(context.Background(),
		shStage("produce", `printf 'a\nb\nc\nd\n'`),
		shStage("take", `head -n 3`),
		shStage("count", `wc -l`),
	)
	require.NoError(t, err)
	require.NoError(t, res.Err())

	assert.Equal(t, "3", strings.TrimSpace(string(res.Stdout)))
	require.Len(t, res.Stages, 3)
	for _, s := range res.Stages {
		assert.Equal(t, 0, s.ExitCode, "stage %s", s.Name)
	}
}

func TestRun_SingleStage(t *testing.T) {
	res, err := Run(context.Background(), shStage("echo", `echo hello`))
	require.NoError(t, err)
	require.NoError(t, res.Err())
	assert.Equal(t, "hello\n", string(res.Stdout))
}

func TestRun_NoStages(t *testing.T) {
	_, err := Run(context.Background())
	assert.Error(t, err)
}

func TestRun_LastStageFailure(t *testing.T) {
	res, err := Run(context.Background(),
		shStage("produce", `echo data`),
		shStage("consume", `cat >/dev/null; echo "boom" >&2; exit 3`),
	)
	require.NoError(t, err)

	var perr *ProcessError
	require.ErrorAs(t, res.Err(), &perr)
	assert.Equal(t, "consume", perr.Stage)
	assert.Equal(t, 3, perr.ExitCode)
	assert.Contains(t, perr.Stderr, "boom")
	assert.Contains(t, perr.Error(), "boom")
}

func TestRun_FirstStageFailureIsIsolated(t *testing.T) {
	// The downstream stage succeeds on empty input; the upstream failure
	// must still be reported.
	res, err := Run(context.Background(),
		shStage("produce", `echo "cannot open file" >&2; exit 1`),
		shStage("count", `wc -l`),
	)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stages[0].ExitCode)
	assert.Equal(t, 0, res.Stages[1].ExitCode)

	var perr *ProcessError
	require.ErrorAs(t, res.Err(), &perr)
	assert.Equal(t, "produce", perr.Stage)
	assert.Contains(t, perr.Stderr, "cannot open file")
}

func TestRun_DownstreamFailureNotMaskedByBrokenPipe(t *testing.T) {
	// The reader exits first, so the writer is killed by SIGPIPE.
	res, err := Run(context.Background(),
		Stage{Name: "head", Path: "yes"},
		shStage("stats", `echo boom >&2; exit 3`),
	)
	require.NoError(t, err)

	assert.Equal(t, syscall.SIGPIPE, res.Stages[0].Signal)
	assert.Equal(t, -1, res.Stages[0].ExitCode)

	var perr *ProcessError
	require.ErrorAs(t, res.Err(), &perr)
	assert.Equal(t, "stats", perr.Stage)
	assert.Equal(t, 3, perr.ExitCode)
	assert.Nil(t, perr.Signal)
	assert.Contains(t, res.Err().Error(), "boom")
}

func TestRun_SignaledStageReportsSignal(t *testing.T) {
	res, err := Run(context.Background(), shStage("head", `kill -TERM $$`))
	require.NoError(t, err)

	var perr *ProcessError
	require.ErrorAs(t, res.Err(), &perr)
	assert.Equal(t, "head", perr.Stage)
	assert.Equal(t, syscall.SIGTERM, perr.Signal)
	assert.Contains(t, perr.Error(), "killed by signal: terminated")
}

func TestResult_Err(t *testing.T) {
	tests := []struct {
		name      string
		stages    []StageResult
		wantStage string
		wantErr   string
	}{
		{
			name: "all stages succeed",
			stages: []StageResult{
				{Name: "head"},
				{Name: "stats"},
			},
		},
		{
			name: "upstream exit status wins over downstream failure",
			stages: []StageResult{
				{Name: "head", ExitCode: 1, Stderr: []byte("corrupt gzip\n")},
				{Name: "stats", ExitCode: 2, Stderr: []byte("truncated record\n")},
			},
			wantStage: "head",
			wantErr:   `stage "head" exited with status 1: corrupt gzip` + "\n" + `stats: truncated record`,
		},
		{
			name: "broken pipe yields to downstream failure",
			stages: []StageResult{
				{Name: "head", ExitCode: -1, Signal: syscall.SIGPIPE},
				{Name: "stats", ExitCode: 3, Stderr: []byte("bad record\n")},
			},
			wantStage: "stats",
			wantErr:   `stage "stats" exited with status 3: bad record`,
		},
		{
			name: "signal alone is reported",
			stages: []StageResult{
				{Name: "head", ExitCode: -1, Signal: syscall.SIGKILL},
				{Name: "stats"},
			},
			wantStage: "head",
			wantErr:   `stage "head" killed by signal: killed`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Result{Stages: tt.stages}).Err()
			if tt.wantStage == "" {
				assert.NoError(t, err)
				return
			}

			var perr *ProcessError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.wantStage, perr.Stage)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestRun_MissingExecutable(t *testing.T) {
	res, err := Run(context.Background(),
		shStage("produce", `echo data`),
		Stage{Name: "missing", Path: "/nonexistent/bin/tool"},
	)

	var perr *ProcessError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "missing", perr.Stage)
	assert.Equal(t, -1, perr.ExitCode)
	require.NotNil(t, res)
	assert.Equal(t, -1, res.Stages[1].ExitCode)
}

func TestRun_ContextDeadlineKillsStages(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Run(ctx,
		shStage("slow", `exec sleep 10`),
		shStage("count", `exec wc -l`),
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestStage_String(t *testing.T) {
	s := Stage{Name: "head", Path: "seqfu", Args: []string{"head", "-n", "10", "reads.fq"}}
	assert.Equal(t, "seqfu head -n 10 reads.fq", s.String())
}

func TestProcessError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ProcessError
		want string
	}{
		{
			name: "exit status with stderr",
			err:  &ProcessError{Stage: "stats", ExitCode: 2, Stderr: "bad input\n"},
			want: `stage "stats" exited with status 2: bad input`,
		},
		{
			name: "exit status without stderr",
			err:  &ProcessError{Stage: "head", ExitCode: 1},
			want: `stage "head" exited with status 1`,
		},
		{
			name: "killed by signal",
			err:  &ProcessError{Stage: "head", ExitCode: -1, Signal: syscall.SIGPIPE},
			want: `stage "head" killed by signal: broken pipe`,
		},
		{
			name: "wrapped cause",
			err:  &ProcessError{Stage: "head", ExitCode: -1, Err: errors.New("not found")},
			want: `stage "head" failed; not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
