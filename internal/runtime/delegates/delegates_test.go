package delegates

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drblury/protoargs/internal/runtime/args"
	"github.com/drblury/protoargs/internal/runtime/jsoncodec"
	loggingpkg "github.com/drblury/protoargs/internal/runtime/logging"
	"github.com/drblury/protoargs/internal/runtime/testschema"
)

func parseEvent(t *testing.T, d args.Delegate) {
	t.Helper()
	payload := testschema.NewBuilder().
		Int(testschema.TagA, 5).
		String(testschema.TagTags, "x").
		String(testschema.TagTags, "y").
		Message(testschema.TagChild, testschema.NewBuilder().Int(testschema.TagChildValue, 7)).
		Varint(testschema.TagOK, 1).
		Build()
	require.NoError(t, args.NewParser(testschema.Pool()).ParseMessage(payload, testschema.EventType, nil, d))
}

func TestRecorderCollectsArgsInOrder(t *testing.T) {
	r := NewRecorder()
	parseEvent(t, r)

	assert.Equal(t, []Arg{
		{FlatKey: "a", Key: "a", Value: IntValue(5)},
		{FlatKey: "tags", Key: "tags[0]", Value: StringValue("x")},
		{FlatKey: "tags", Key: "tags[1]", Value: StringValue("y")},
		{FlatKey: "child.value", Key: "child.value", Value: IntValue(7)},
		{FlatKey: "ok", Key: "ok", Value: BoolValue(true)},
	}, r.Args())
	assert.Equal(t, 5, r.Len())

	v, ok := r.Get("tags[1]")
	require.True(t, ok)
	assert.Equal(t, "y", v.String)

	_, ok = r.Get("tags")
	assert.False(t, ok)

	assert.Len(t, r.ByFlatKey("tags"), 2)
	assert.Empty(t, r.ByFlatKey("missing"))

	r.Reset()
	assert.Zero(t, r.Len())
	_, ok = r.Get("a")
	assert.False(t, ok)
}

func TestRecorderZeroValueIsUsable(t *testing.T) {
	var r Recorder
	r.AddDouble(args.NewKey("ratio"), 0.5)
	v, ok := r.Get("ratio")
	require.True(t, ok)
	assert.Equal(t, RealValue(0.5), v)
}

func TestValueHelpers(t *testing.T) {
	tests := []struct {
		value    Value
		typeName string
		text     string
		iface    any
	}{
		{IntValue(-3), "int", "-3", int64(-3)},
		{UintValue(math.MaxUint64), "uint", "18446744073709551615", uint64(math.MaxUint64)},
		{BoolValue(true), "bool", "true", true},
		{RealValue(1.25), "real", "1.25", 1.25},
		{StringValue("hi"), "string", "hi", "hi"},
		{Value{}, "unknown", "<unknown>", nil},
	}
	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			assert.Equal(t, tt.typeName, tt.value.Type.String())
			assert.Equal(t, tt.text, tt.value.Text())
			assert.Equal(t, tt.iface, tt.value.Interface())
		})
	}
}

func TestArgJSONEncoding(t *testing.T) {
	data, err := jsoncodec.Marshal(Arg{FlatKey: "tags", Key: "tags[0]", Value: StringValue("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"flat_key":"tags","key":"tags[0]","value":{"type":"string","value":"x"}}`, string(data))
}

func TestValueJSONRoundTrip(t *testing.T) {
	for _, v := range []Value{
		IntValue(-3),
		UintValue(math.MaxUint64),
		BoolValue(true),
		RealValue(0.5),
		StringValue("x"),
	} {
		data, err := jsoncodec.Marshal(v)
		require.NoError(t, err)

		var got Value
		require.NoError(t, jsoncodec.Unmarshal(data, &got))
		assert.Equal(t, v, got)
	}

	var bad Value
	assert.Error(t, jsoncodec.Unmarshal([]byte(`{"type":"blob","value":1}`), &bad))
}

func TestValueJSONNonFiniteReals(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{math.NaN(), `{"type":"real","value":"NaN"}`},
		{math.Inf(1), `{"type":"real","value":"+Inf"}`},
		{math.Inf(-1), `{"type":"real","value":"-Inf"}`},
	}
	for _, tt := range tests {
		data, err := jsoncodec.Marshal(RealValue(tt.value))
		require.NoError(t, err)
		assert.JSONEq(t, tt.want, string(data))

		var got Value
		require.NoError(t, jsoncodec.Unmarshal(data, &got))
		assert.Equal(t, ValueTypeReal, got.Type)
		if math.IsNaN(tt.value) {
			assert.True(t, math.IsNaN(got.Real))
		} else {
			assert.Equal(t, tt.value, got.Real)
		}
	}

	var bad Value
	assert.Error(t, jsoncodec.Unmarshal([]byte(`{"type":"real","value":"lots"}`), &bad))
}

func TestJSONDelegateNonFiniteDoubles(t *testing.T) {
	j := NewJSON()
	j.AddDouble(args.NewKey("nan"), math.NaN())
	j.AddDouble(args.NewKey("neg"), math.Inf(-1))
	j.AddDouble(args.NewKey("half"), 0.5)

	data, err := j.Bytes()
	require.NoError(t, err)
	assert.Equal(t, `{"half":0.5,"nan":"NaN","neg":"-Inf"}`, string(data))
}

func TestJSONDelegate(t *testing.T) {
	j := NewJSON()
	parseEvent(t, j)

	data, err := j.Bytes()
	require.NoError(t, err)
	assert.Equal(t, `{"a":5,"child.value":7,"ok":true,"tags[0]":"x","tags[1]":"y"}`, string(data))

	buf := &bytes.Buffer{}
	require.NoError(t, j.Encode(buf))
	assert.Equal(t, string(data), strings.TrimSpace(buf.String()))

	var empty JSON
	data, err = empty.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestLoggingDelegate(t *testing.T) {
	logger := &traceRecorder{}
	parseEvent(t, NewLogging(loggingpkg.NewWatermillServiceLogger(logger)))

	require.Len(t, logger.fields, 5)
	assert.Equal(t, "tags", logger.fields[1]["flat_key"])
	assert.Equal(t, "tags[0]", logger.fields[1]["key"])
	assert.Equal(t, "string", logger.fields[1]["value_type"])
	assert.Equal(t, "x", logger.fields[1]["value"])

	assert.Panics(t, func() { NewLogging(nil) })
}

func TestLoggingDelegateAtLevel(t *testing.T) {
	logger := &debugRecorder{}
	parseEvent(t, NewLoggingAt(loggingpkg.NewWatermillServiceLogger(logger), loggingpkg.LevelDebug))

	require.Len(t, logger.fields, 5)
	assert.Equal(t, "a", logger.fields[0]["key"])
	assert.Equal(t, int64(5), logger.fields[0]["value"])
}

func TestMultiFansOut(t *testing.T) {
	first, second := NewRecorder(), NewRecorder()
	parseEvent(t, NewMulti(first, nil, second))

	assert.Equal(t, first.Args(), second.Args())
	assert.Equal(t, 5, second.Len())
}

func TestCountingObservesEveryValue(t *testing.T) {
	obs := &typeObserver{}
	inner := NewRecorder()
	c := NewCounting(inner, obs)
	parseEvent(t, c)

	c.AddUnsignedInteger(args.NewKey("u"), 1)
	c.AddDouble(args.NewKey("d"), 1)

	assert.Equal(t, 7, c.Count())
	assert.Equal(t, 7, inner.Len())
	assert.Equal(t, map[string]int{"int": 2, "string": 2, "bool": 1, "uint": 1, "real": 1}, obs.counts)

	nilObserver := NewCounting(NewRecorder(), nil)
	nilObserver.AddBoolean(args.NewKey("b"), false)
	assert.Equal(t, 1, nilObserver.Count())
}

type typeObserver struct {
	counts map[string]int
}

func (o *typeObserver) ObserveArg(valueType string) {
	if o.counts == nil {
		o.counts = make(map[string]int)
	}
	o.counts[valueType]++
}

type debugRecorder struct {
	watermill.NopLogger
	fields []watermill.LogFields
}

func (r *debugRecorder) Debug(msg string, fields watermill.LogFields) {
	r.fields = append(r.fields, fields)
}

type traceRecorder struct {
	watermill.NopLogger
	fields []watermill.LogFields
}

func (r *traceRecorder) Trace(msg string, fields watermill.LogFields) {
	r.fields = append(r.fields, fields)
}
