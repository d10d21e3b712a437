package taskio

import (
	"encoding/csv"
	stderrors "errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kbukum/taskflow/errors"
	"github.com/kbukum/taskflow/task"
)

// Input column names.
const (
	ColumnTaskID   = "task_id"
	ColumnTaskType = "task_type"
)

// ReadFile opens path and reads a batch from it.
func ReadFile(path string) ([]task.Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.InvalidInput("cannot open " + path).WithCause(err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads a batch. Any malformed row fails the whole batch.
func ReadCSV(r io.Reader) ([]task.Input, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if stderrors.Is(err, io.EOF) {
		return nil, errors.InvalidInput("empty input, expected a header row")
	}
	if err != nil {
		return nil, errors.InvalidInput("unreadable header").WithCause(err)
	}
	idCol, typeCol, err := columns(header)
	if err != nil {
		return nil, err
	}

	var inputs []task.Input
	for {
		record, err := cr.Read()
		if stderrors.Is(err, io.EOF) {
			return inputs, nil
		}
		if err != nil {
			return nil, errors.InvalidInput("malformed CSV").WithCause(err)
		}
		line, _ := cr.FieldPos(0)

		raw := strings.TrimSpace(record[idCol])
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, errors.InvalidRow(line, ColumnTaskID, "must be an unsigned integer, got "+strconv.Quote(raw)).WithCause(err)
		}
		inputs = append(inputs, task.Input{
			TaskID:   id,
			TaskType: strings.TrimSpace(record[typeCol]),
		})
	}
}

func columns(header []string) (idCol, typeCol int, err error) {
	idCol, typeCol = -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case ColumnTaskID:
			idCol = i
		case ColumnTaskType:
			typeCol = i
		}
	}
	if idCol < 0 {
		return 0, 0, errors.MissingField(ColumnTaskID)
	}
	if typeCol < 0 {
		return 0, 0, errors.MissingField(ColumnTaskType)
	}
	return idCol, typeCol, nil
}
