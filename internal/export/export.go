// Package export writes session history as Parquet for offline analysis.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/abhisek/nodaysoff/internal/store"
)

// commitRow is one committed session.
type commitRow struct {
	Sequence     int64   `parquet:"name=sequence, type=INT64"`
	TSUTCISO     string  `parquet:"name=ts_utc_iso, type=BYTE_ARRAY, convertedtype=UTF8"`
	GapDays      int32   `parquet:"name=gap_days, type=INT32"`
	FirstEver    bool    `parquet:"name=first_ever, type=BOOLEAN"`
	Band         string  `parquet:"name=band, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	StreakBefore int32   `parquet:"name=streak_before, type=INT32"`
	StreakAfter  int32   `parquet:"name=streak_after, type=INT32"`
	HIITPassed   bool    `parquet:"name=hiit_passed, type=BOOLEAN"`
	HIITBefore   int32   `parquet:"name=hiit_before_s, type=INT32"`
	HIITAfter    int32   `parquet:"name=hiit_after_s, type=INT32"`
	VO2MaxPassed bool    `parquet:"name=vo2max_passed, type=BOOLEAN"`
	VO2MaxBefore float64 `parquet:"name=vo2max_before, type=DOUBLE"`
	VO2MaxAfter  float64 `parquet:"name=vo2max_after, type=DOUBLE"`
	WeightsDay   string  `parquet:"name=weights_day, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	WeightsJSON  string  `parquet:"name=weights_json, type=BYTE_ARRAY, convertedtype=UTF8"`
	RestEntered  bool    `parquet:"name=rest_entered, type=BOOLEAN"`
	RestCleared  bool    `parquet:"name=rest_cleared, type=BOOLEAN"`
}

// MarshalCommits encodes events as a Snappy-compressed Parquet file, oldest
// first.
func MarshalCommits(events []store.CommitEvent) ([]byte, error) {
	ordered := slices.Clone(events)
	slices.SortStableFunc(ordered, func(a, b store.CommitEvent) int {
		switch {
		case a.Sequence < b.Sequence:
			return -1
		case a.Sequence > b.Sequence:
			return 1
		}
		return 0
	})

	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(commitRow), 4)
	if err != nil {
		return nil, fmt.Errorf("create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, ev := range ordered {
		row, err := toRow(ev)
		if err != nil {
			_ = pw.WriteStop()
			return nil, err
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return nil, fmt.Errorf("write commit %d: %w", ev.Sequence, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("finish parquet: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}

// WriteCommits writes the Parquet encoding of events to w.
func WriteCommits(w io.Writer, events []store.CommitEvent) error {
	data, err := MarshalCommits(events)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes the Parquet encoding of events to path.
func WriteFile(path string, events []store.CommitEvent) error {
	data, err := MarshalCommits(events)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func toRow(ev store.CommitEvent) (commitRow, error) {
	weights := ev.Weights
	if weights == nil {
		weights = []store.WeightChange{}
	}
	wj, err := json.Marshal(weights)
	if err != nil {
		return commitRow{}, fmt.Errorf("encode weights for commit %d: %w", ev.Sequence, err)
	}
	return commitRow{
		Sequence:     ev.Sequence,
		TSUTCISO:     store.FormatTime(ev.Timestamp),
		GapDays:      int32(ev.GapDays),
		FirstEver:    ev.FirstEver,
		Band:         ev.Band,
		StreakBefore: int32(ev.StreakBefore),
		StreakAfter:  int32(ev.StreakAfter),
		HIITPassed:   ev.HIITPassed,
		HIITBefore:   int32(ev.HIITBefore),
		HIITAfter:    int32(ev.HIITAfter),
		VO2MaxPassed: ev.VO2MaxPassed,
		VO2MaxBefore: ev.VO2MaxBefore,
		VO2MaxAfter:  ev.VO2MaxAfter,
		WeightsDay:   string(ev.WeightsDay),
		WeightsJSON:  string(wj),
		RestEntered:  ev.RestEntered,
		RestCleared:  ev.RestCleared,
	}, nil
}
