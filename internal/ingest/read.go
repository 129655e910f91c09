// JSON-lines event input driving one session
package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"rumbeacon/internal/agent"
	"rumbeacon/internal/global"
	"rumbeacon/internal/logctx"
	"strings"
)

func New(ctx context.Context, target Target) (new *Reader) {
	new = &Reader{
		Namespace: append(append([]string(nil), logctx.GetTagList(ctx)...), global.NSIngest),
		target:    target,
		actions:   make(map[string]*agent.Action),
		Metrics:   &MetricStorage{},
	}
	return
}

// Applies every line of input until EOF or ctx is done.
// Malformed lines are logged and skipped; only read failures are returned.
func (reader *Reader) Run(ctx context.Context, input io.Reader) (err error) {
	ctx = logctx.AppendCtxTag(ctx, global.NSIngest)

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	var lineNumber int
	for scanner.Scan() {
		if ctx.Err() != nil {
			logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog,
				"Input stopped after %d lines\n", lineNumber)
			return
		}

		lineNumber++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		reader.Metrics.LinesRead.Add(1)

		var line Line
		lineErr := json.Unmarshal([]byte(text), &line)
		if lineErr == nil {
			lineErr = reader.Apply(line)
		}
		if lineErr != nil {
			reader.Metrics.Malformed.Add(1)
			logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
				"skipping input line %d: %v\n", lineNumber, lineErr)
			continue
		}
		reader.Metrics.Applied.Add(1)
	}

	err = scanner.Err()
	if err != nil {
		err = fmt.Errorf("failed reading input: %w", err)
		return
	}
	return
}
