package logger

import "time"

// Field keys shared by every component.
const (
	FieldComponent = "component"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"
	FieldBatchID   = "batch_id"
	FieldTaskID    = "task_id"
	FieldTaskType  = "task_type"
	FieldStep      = "step"
	FieldStrategy  = "strategy"
	FieldBatchSize = "batch_size"
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// F is a set of structured fields. It can be passed anywhere a
// map[string]interface{} is accepted.
type F map[string]interface{}

// Fields builds F from alternating key-value pairs. Pairs with a non-string
// key and a trailing odd value are dropped.
//
//	logger.Info("batch done", logger.Fields("strategy", "bounded", "size", 42))
func Fields(kvs ...interface{}) F {
	f := make(F, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		if key, ok := kvs[i].(string); ok {
			f[key] = kvs[i+1]
		}
	}
	return f
}

func (f F) set(key string, value interface{}) F {
	if f == nil {
		f = F{}
	}
	f[key] = value
	return f
}

// Err adds err under FieldError. A nil err leaves f unchanged.
func (f F) Err(err error) F {
	if err == nil {
		return f
	}
	return f.set(FieldError, err.Error())
}

// Took adds d in milliseconds under FieldDuration.
func (f F) Took(d time.Duration) F {
	return f.set(FieldDuration, d.Milliseconds())
}

// Op adds the operation name under FieldOperation.
func (f F) Op(name string) F {
	return f.set(FieldOperation, name)
}
