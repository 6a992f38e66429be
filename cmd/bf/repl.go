package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	bf "nickandperla.net/brainfuck"
)

// lineReader narrows the REPL's needs to one prompt-and-read call so
// the same loop drives a liner session on a terminal and a plain
// buffered reader on a pipe.
type lineReader interface {
	ReadLine(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

type linerReader struct {
	state *liner.State
}

func (r *linerReader) ReadLine(prompt string) (string, error) {
	return r.state.Prompt(prompt)
}

func (r *linerReader) AppendHistory(line string) {
	r.state.AppendHistory(line)
}

func (r *linerReader) Close() error {
	return r.state.Close()
}

type plainReader struct {
	scanner *bufio.Scanner
}

func (r *plainReader) ReadLine(prompt string) (string, error) {
	fmt.Print(prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *plainReader) AppendHistory(line string) {}

func (r *plainReader) Close() error {
	return nil
}

func newLineReader() lineReader {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		state := liner.NewLiner()
		state.SetCtrlCAborts(true)
		return &linerReader{state: state}
	}
	return &plainReader{scanner: bufio.NewScanner(os.Stdin)}
}

// runREPL reads lines until "exit". A buffer with an unclosed loop is
// held across lines with a continuation prompt instead of being run, so
// multi-line loop bodies work the way they do in a script. Every
// submitted buffer runs on a fresh machine.
func runREPL(mc *bf.MachineConfig, persist *bf.Persistence) error {
	reader := newLineReader()
	defer reader.Close()

	fmt.Println("Write exit to finish the interpreter")

	var buffer strings.Builder
	for {
		prompt := "> "
		if buffer.Len() > 0 {
			prompt = "==> "
		}

		line, err := reader.ReadLine(prompt)
		if err == io.EOF || err == liner.ErrPromptAborted {
			return nil
		} else if err != nil {
			return err
		}

		if strings.TrimSpace(line) == "exit" {
			return nil
		}

		buffer.WriteString(line)
		buffer.WriteString("\n")
		source := buffer.String()

		out := &countingWriter{sink: os.Stdout}
		machine := bf.NewMachine(mc, os.Stdin, out)
		runErr := machine.Run(source)

		var machineErr *bf.MachineError
		if errors.As(runErr, &machineErr) && machineErr.Code == bf.ErrCodeUnclosedLoop {
			// The loop body isn't finished yet. Keep the buffer and
			// wait for more input.
			continue
		}

		reader.AppendHistory(strings.TrimSpace(source))
		recordRun(persist, source, machine, runErr, out.count)
		buffer.Reset()

		if runErr != nil {
			if machineErr != nil && machineErr.Code == bf.ErrCodeOutputFailed {
				return runErr
			}
			fmt.Fprintf(os.Stderr, "bf: %v\n", runErr)
		}
	}
}
