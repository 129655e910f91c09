package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"rumbeacon/internal/agent"
	"rumbeacon/internal/event"
)

// Executes one input line against the target session
func (reader *Reader) Apply(line Line) (err error) {
	switch line.Op {
	case OpEnter:
		err = reader.enter(line)
	case OpLeave:
		err = reader.leave(line)
	case OpEvent:
		err = requireName(line)
		if err != nil {
			return
		}
		err = reader.withParent(line, func(action *agent.Action) { action.ReportEvent(line.Name) },
			func() { reader.target.ReportEvent(line.Name) })
	case OpValue:
		err = requireName(line)
		if err != nil {
			return
		}
		var value any
		value, err = decodeValue(line.Value)
		if err != nil {
			return
		}
		err = reader.withParent(line, func(action *agent.Action) { action.ReportValue(line.Name, value) },
			func() { reader.target.ReportValue(line.Name, value) })
	case OpError:
		err = requireName(line)
		if err != nil {
			return
		}
		err = reader.withParent(line, func(action *agent.Action) { action.ReportError(line.Name, line.Reason, line.Code) },
			func() { reader.target.ReportError(line.Name, line.Reason, line.Code) })
	case OpCrash:
		err = requireName(line)
		if err != nil {
			return
		}
		reader.target.ReportCrash(line.Name, line.Reason, line.Stacktrace)
	case OpIdentify:
		reader.target.IdentifyUser(line.User)
	case OpRequest:
		err = reader.request(line)
	case OpBiz:
		if line.Type == "" {
			err = fmt.Errorf("biz event requires a type")
			return
		}
		var attrs *event.Attributes
		attrs, err = decodeAttributes(line.Attributes)
		if err != nil {
			return
		}
		reader.target.SendBizEvent(line.Type, attrs)
	case OpCustom:
		err = requireName(line)
		if err != nil {
			return
		}
		var attrs *event.Attributes
		attrs, err = decodeAttributes(line.Attributes)
		if err != nil {
			return
		}
		reader.target.SendEvent(line.Name, attrs)
	case OpEnd:
		reader.target.End()
		reader.actions = make(map[string]*agent.Action)
	default:
		err = fmt.Errorf("unknown operation '%s'", line.Op)
	}
	return
}

func requireName(line Line) (err error) {
	if line.Name == "" {
		err = fmt.Errorf("%s requires a name", line.Op)
	}
	return
}

func (reader *Reader) enter(line Line) (err error) {
	if line.ID == "" {
		err = fmt.Errorf("enter requires an id")
		return
	}
	err = requireName(line)
	if err != nil {
		return
	}
	if _, exists := reader.actions[line.ID]; exists {
		err = fmt.Errorf("action id '%s' is already open", line.ID)
		return
	}
	reader.actions[line.ID] = reader.target.EnterAction(line.Name)
	return
}

func (reader *Reader) leave(line Line) (err error) {
	action, ok := reader.actions[line.ID]
	if !ok {
		err = fmt.Errorf("no open action with id '%s'", line.ID)
		return
	}
	action.Leave()
	delete(reader.actions, line.ID)
	return
}

// Runs onAction for lines naming a parent action, onSession otherwise
func (reader *Reader) withParent(line Line, onAction func(action *agent.Action), onSession func()) (err error) {
	if line.Action == "" {
		onSession()
		return
	}
	action, ok := reader.actions[line.Action]
	if !ok {
		err = fmt.Errorf("no open action with id '%s'", line.Action)
		return
	}
	onAction(action)
	return
}

func (reader *Reader) request(line Line) (err error) {
	if line.URL == "" {
		err = fmt.Errorf("request requires a url")
		return
	}

	var tracer *agent.WebRequestTracer
	err = reader.withParent(line, func(action *agent.Action) { tracer = action.TraceWebRequest(line.URL) },
		func() { tracer = reader.target.TraceWebRequest(line.URL) })
	if err != nil {
		return
	}
	tracer.Stop(orMissing(line.Status), orMissing(line.BytesSent), orMissing(line.BytesReceived))
	return
}

// Absent counters are reported as -1 so the record omits them
func orMissing(value *int64) (number int64) {
	number = -1
	if value != nil {
		number = *value
	}
	return
}

// Scalar value: integers stay integral, other numbers become floats
func decodeValue(raw json.RawMessage) (value any, err error) {
	if len(raw) == 0 {
		return
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var decoded any
	err = decoder.Decode(&decoded)
	if err != nil {
		err = fmt.Errorf("invalid value: %w", err)
		return
	}

	switch v := decoded.(type) {
	case json.Number:
		if integer, intErr := v.Int64(); intErr == nil {
			value = integer
		} else {
			value, err = v.Float64()
		}
	case map[string]any, []any:
		err = fmt.Errorf("value must be a string, number, boolean or null")
	default:
		value = v
	}
	return
}

func decodeAttributes(raw json.RawMessage) (attrs *event.Attributes, err error) {
	if len(raw) == 0 || string(raw) == "null" {
		return
	}
	attrs, err = event.ParseAttributes(raw)
	return
}
