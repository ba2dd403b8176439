package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"postboard/service"

	"github.com/stretchr/testify/assert"
)

func captureOutput(f func()) string {
	var buf bytes.Buffer
	oldStdout, oldStderr := os.Stdout, os.Stderr
	r, w, _ := os.Pipe()
	os.Stdout, os.Stderr = w, w

	done := make(chan bool)
	go func() {
		_, _ = io.Copy(&buf, r)
		done <- true
	}()

	f()
	_ = w.Close()
	os.Stdout, os.Stderr = oldStdout, oldStderr
	<-done

	return buf.String()
}

func callMain() (int, string) {
	exitCode := 0
	oldExit := exit
	defer func() { exit = oldExit }()
	exit = func(code int) {
		exitCode = code
	}

	output := captureOutput(RealMain)
	return exitCode, output
}

func TestRealMain(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	tests := []struct {
		name           string
		args           []string
		expectedExit   int
		expectedOutput string
	}{
		{
			name:           "no arguments",
			args:           []string{"postboard"},
			expectedExit:   0,
			expectedOutput: "Usage:",
		},
		{
			name:           "help command",
			args:           []string{"postboard", "help"},
			expectedExit:   0,
			expectedOutput: "serve",
		},
		{
			name:           "version command",
			args:           []string{"postboard", "version"},
			expectedExit:   0,
			expectedOutput: "postboard version " + service.Version,
		},
		{
			name:           "unknown command",
			args:           []string{"postboard", "unknown"},
			expectedExit:   1,
			expectedOutput: "Error: unknown command",
		},
		{
			name:           "restore without file",
			args:           []string{"postboard", "restore"},
			expectedExit:   1,
			expectedOutput: "Error: accepts 1 arg(s), received 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			exitCode, output := callMain()

			assert.Contains(t, output, tt.expectedOutput)
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}
