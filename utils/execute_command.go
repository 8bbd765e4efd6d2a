package utils

import (
	"bufio"
	"bytes"
	"errors"
	"os/exec"
	"strings"

	"github.com/ansel1/merry/v2"
	"github.com/bcc-code/bcc-media-stills/common"
)

type stderrKey struct{}

// ExecuteCmd executes the cmd and returns through outputCallback line-by-line before returning the whole stdout at the end.
//
// A command that cannot be started fails with common.ErrSpawn, a command exiting non-zero fails with
// common.ErrExternalTool. The captured stderr is attached to the error, see Stderr.
func ExecuteCmd(cmd *exec.Cmd, outputCallback func(string)) (string, error) {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", merry.Wrap(common.ErrSpawn, merry.WithMessagef("stdout pipe for %s: %s", cmd.Path, err), merry.WithCause(err))
	}

	errorBytes := bytes.Buffer{}
	cmd.Stderr = &errorBytes

	err = cmd.Start()
	if err != nil {
		return "", merry.Wrap(common.ErrSpawn, merry.WithMessagef("start failed %s", err.Error()), merry.WithCause(err))
	}

	var result strings.Builder

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	scanner.Split(bufio.ScanLines)
	for scanner.Scan() {
		line := scanner.Text()
		result.WriteString(line)
		result.WriteString("\n")
		if outputCallback != nil {
			outputCallback(line)
		}
	}

	err = cmd.Wait()
	if err != nil {
		return "", merry.Wrap(common.ErrExternalTool,
			merry.WithMessagef("execution failed error: %s,\nmessage: %s", err.Error(), strings.TrimSpace(errorBytes.String())),
			merry.WithCause(err),
			merry.WithValue(stderrKey{}, errorBytes.String()),
		)
	}

	return result.String(), nil
}

// Stderr returns the stderr output attached to an error returned by ExecuteCmd.
func Stderr(err error) string {
	if err == nil {
		return ""
	}
	s, _ := merry.Value(err, stderrKey{}).(string)
	return s
}

// ExitCode returns the exit status carried by err, or -1 when the process never ran or exited normally.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	for _, e := range []error{err, merry.Cause(err)} {
		if errors.As(e, &exitErr) {
			return exitErr.ExitCode()
		}
	}
	return -1
}
