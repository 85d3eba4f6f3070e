package output_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"land.dev/land/internal/output"
)

func TestStepOnlyShownInVerboseMode(t *testing.T) {
	buf := &bytes.Buffer{}
	splog := output.NewSplogWithWriter(buf)

	splog.Step("narration %d", 1)
	require.Empty(t, buf.String())

	splog.SetVerbose(true)
	splog.Step("narration %d", 2)
	require.Contains(t, buf.String(), "narration 2")
}

func TestInfoAndWarn(t *testing.T) {
	buf := &bytes.Buffer{}
	splog := output.NewSplogWithWriter(buf)

	splog.Info("landed %s", "feature")
	splog.Warn("could not delete %s", "feature")

	require.Contains(t, buf.String(), "landed feature")
	require.Contains(t, buf.String(), "could not delete feature")
}
