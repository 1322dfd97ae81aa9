package router

import (
	"testing"

	"github.com/aretw0/runcmd/pkg/adapters/memory"
	"github.com/aretw0/runcmd/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute_Selection(t *testing.T) {
	t.Run("Replaces Region", func(t *testing.T) {
		doc := memory.NewDocument("x abc y")
		region := domain.Region{Start: 2, End: 5}

		out, err := Route(doc, Input{Region: region, Stdin: []byte("abc"), Command: "tr a-z A-Z", Target: domain.TargetSelection},
			&domain.Result{Stdout: []byte("ABCD")})
		require.NoError(t, err)
		assert.True(t, out.Replaced)
		assert.Equal(t, 1, out.Delta)
		assert.Equal(t, domain.OutcomeSuccess, out.Label)
		assert.Equal(t, "x ABCD y", doc.Text())
	})

	t.Run("Identical Output Is A No-Op", func(t *testing.T) {
		doc := &recordingDocument{Document: memory.NewDocument("abc")}
		out, err := Route(doc, Input{Region: domain.Region{Start: 0, End: 3}, Stdin: []byte("abc"), Target: domain.TargetSelection},
			&domain.Result{Stdout: []byte("abc")})
		require.NoError(t, err)
		assert.False(t, out.Replaced)
		assert.Equal(t, domain.OutcomeNoop, out.Label)
		assert.Zero(t, doc.replaces)
	})

	t.Run("Null Region Is Never Replaced", func(t *testing.T) {
		doc := &recordingDocument{Document: memory.NewDocument("abc")}
		out, err := Route(doc, Input{Region: domain.NullRegion, Target: domain.TargetSelection},
			&domain.Result{Stdout: []byte("out")})
		require.NoError(t, err)
		assert.False(t, out.Replaced)
		assert.Zero(t, doc.replaces)
		assert.Equal(t, "abc", doc.Text())
	})

	t.Run("Cursor Inserts", func(t *testing.T) {
		doc := memory.NewDocument("ab")
		_, err := Route(doc, Input{Region: domain.Region{Start: 1, End: 1}, Target: domain.TargetSelection},
			&domain.Result{Stdout: []byte("-")})
		require.NoError(t, err)
		assert.Equal(t, "a-b", doc.Text())
	})
}

func TestRoute_Window(t *testing.T) {
	doc := memory.NewDocument("")
	out, err := Route(doc, Input{Region: domain.NullRegion, Command: "echo hi", Target: domain.TargetWindow},
		&domain.Result{Stdout: []byte("hi\n")})
	require.NoError(t, err)
	assert.Equal(t, "echo hi", out.Created)
	assert.Equal(t, []memory.Output{{Name: "echo hi", Text: "hi\n"}}, doc.Outputs())
}

func TestRoute_None(t *testing.T) {
	doc := memory.NewDocument("abc")
	out, err := Route(doc, Input{Region: domain.Region{Start: 0, End: 3}, Stdin: []byte("abc"), Target: domain.TargetNone},
		&domain.Result{Stdout: []byte("zzz")})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNoop, out.Label)
	assert.Equal(t, "abc", doc.Text())
	assert.Empty(t, doc.Outputs())
}

func TestRoute_StderrPrecedence(t *testing.T) {
	for _, target := range []domain.Target{domain.TargetSelection, domain.TargetWindow} {
		t.Run(string(target), func(t *testing.T) {
			doc := memory.NewDocument("abc")
			out, err := Route(doc, Input{Region: domain.Region{Start: 0, End: 3}, Stdin: []byte("abc"), Command: "c", Target: target},
				&domain.Result{Stdout: []byte("stdout wins?"), Stderr: []byte("warning: careful\n"), ExitCode: 0})

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrStderr)
			assert.Equal(t, "warning: careful\n", err.Error())
			assert.Equal(t, domain.OutcomeStderr, out.Label)
			assert.Equal(t, "abc", doc.Text())
			assert.Empty(t, doc.Outputs())
		})
	}
}

func TestRoute_DecodeErrors(t *testing.T) {
	invalid := []byte{0xff, 0xfe}

	t.Run("Stdout", func(t *testing.T) {
		doc := memory.NewDocument("abc")
		_, err := Route(doc, Input{Region: domain.Region{Start: 0, End: 3}, Target: domain.TargetSelection},
			&domain.Result{Stdout: invalid})
		assert.ErrorIs(t, err, domain.ErrDecode)
		assert.Contains(t, err.Error(), "stdout")
		assert.Equal(t, "abc", doc.Text())
	})

	t.Run("Window Stdout", func(t *testing.T) {
		doc := memory.NewDocument("")
		out, err := Route(doc, Input{Region: domain.NullRegion, Command: "cat bin", Target: domain.TargetWindow},
			&domain.Result{Stdout: invalid})
		assert.ErrorIs(t, err, domain.ErrDecode)
		assert.Equal(t, domain.OutcomeDecode, out.Label)
		assert.Empty(t, doc.Outputs())
	})

	t.Run("Discarded Binary Stdout", func(t *testing.T) {
		doc := memory.NewDocument("abc")
		out, err := Route(doc, Input{Region: domain.Region{Start: 0, End: 3}, Stdin: []byte("abc"), Target: domain.TargetNone},
			&domain.Result{Stdout: []byte{0xff, 0xfe, 0x00, 0x80}})
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeNoop, out.Label)
		assert.Equal(t, "abc", doc.Text())
	})

	t.Run("Stderr", func(t *testing.T) {
		doc := memory.NewDocument("abc")
		_, err := Route(doc, Input{Region: domain.Region{Start: 0, End: 3}, Target: domain.TargetSelection},
			&domain.Result{Stdout: []byte("ok"), Stderr: invalid})
		assert.ErrorIs(t, err, domain.ErrDecode)
		assert.Contains(t, err.Error(), "stderr")
	})
}

func TestRoute_InvalidTarget(t *testing.T) {
	_, err := Route(memory.NewDocument(""), Input{Target: "panel"}, &domain.Result{})
	assert.ErrorIs(t, err, domain.ErrInvalidTarget)
}

type recordingDocument struct {
	*memory.Document
	replaces int
}

func (d *recordingDocument) Replace(r domain.Region, text string) error {
	d.replaces++
	return d.Document.Replace(r, text)
}
