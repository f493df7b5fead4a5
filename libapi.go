package protoargs

import (
	runtimepkg "github.com/drblury/protoargs/internal/runtime"
	argspkg "github.com/drblury/protoargs/internal/runtime/args"
	configpkg "github.com/drblury/protoargs/internal/runtime/config"
	delegatespkg "github.com/drblury/protoargs/internal/runtime/delegates"
	descpkg "github.com/drblury/protoargs/internal/runtime/descriptors"
	errspkg "github.com/drblury/protoargs/internal/runtime/errors"
	handlerpkg "github.com/drblury/protoargs/internal/runtime/handlers"
	idspkg "github.com/drblury/protoargs/internal/runtime/ids"
	jsoncodec "github.com/drblury/protoargs/internal/runtime/jsoncodec"
	loggingpkg "github.com/drblury/protoargs/internal/runtime/logging"
	metadatapkg "github.com/drblury/protoargs/internal/runtime/metadata"
	wirepkg "github.com/drblury/protoargs/internal/runtime/wire"
)

type (
	Parser          = argspkg.Parser
	ParserOption    = argspkg.Option
	ParsingOverride = argspkg.ParsingOverride
	Delegate        = argspkg.Delegate
	Key             = argspkg.Key

	Field   = wirepkg.Field
	Decoder = wirepkg.Decoder

	Pool            = descpkg.Pool
	ProtoPool       = descpkg.ProtoPool
	Descriptor      = descpkg.Descriptor
	FieldDescriptor = descpkg.FieldDescriptor

	Flattener             = runtimepkg.Flattener
	FlattenerDependencies = runtimepkg.FlattenerDependencies
	ArgSet                = runtimepkg.ArgSet
	Config                = configpkg.Config

	Arg         = delegatespkg.Arg
	Value       = delegatespkg.Value
	ValueType   = delegatespkg.ValueType
	Recorder    = delegatespkg.Recorder
	JSON        = delegatespkg.JSON
	Multi       = delegatespkg.Multi
	Counting    = delegatespkg.Counting
	ArgObserver = delegatespkg.ArgObserver

	Metadata    = metadatapkg.Metadata
	FlattenFunc = handlerpkg.FlattenFunc

	LogFields     = loggingpkg.LogFields
	LogLevel      = loggingpkg.Level
	ServiceLogger = loggingpkg.ServiceLogger

	UnsupportedFieldTypeError = errspkg.UnsupportedFieldTypeError
	ConfigValidationError     = errspkg.ConfigValidationError
)

var (
	NewParser             = argspkg.NewParser
	WithKeyPrefixCapacity = argspkg.WithKeyPrefixCapacity
	NewKey                = argspkg.NewKey
	NewFlatKey            = argspkg.NewFlatKey

	NewDecoder     = wirepkg.NewDecoder
	NewVarintField = wirepkg.NewVarintField
	NewBytesField  = wirepkg.NewBytesField

	NewProtoPool         = descpkg.NewProtoPool
	NewMessageDescriptor = descpkg.NewMessageDescriptor
	NewEnumDescriptor    = descpkg.NewEnumDescriptor

	NewFlattener   = runtimepkg.NewFlattener
	ValidateConfig = configpkg.ValidateConfig

	NewRecorder  = delegatespkg.NewRecorder
	NewJSON      = delegatespkg.NewJSON
	NewLogging   = delegatespkg.NewLogging
	NewLoggingAt = delegatespkg.NewLoggingAt
	NewMulti     = delegatespkg.NewMulti
	NewCounting  = delegatespkg.NewCounting

	IntValue    = delegatespkg.IntValue
	UintValue   = delegatespkg.UintValue
	BoolValue   = delegatespkg.BoolValue
	RealValue   = delegatespkg.RealValue
	StringValue = delegatespkg.StringValue

	BuildArgsHandler = handlerpkg.BuildArgsHandler
	NewMetadata      = metadatapkg.Pairs

	NewSlogServiceLogger      = loggingpkg.NewSlogServiceLogger
	NewWatermillServiceLogger = loggingpkg.NewWatermillServiceLogger
	NewNopServiceLogger       = loggingpkg.NewNopServiceLogger
	NewWatermillAdapter       = loggingpkg.NewWatermillAdapter

	NewArgSetID = idspkg.NewArgSetID
	ArgSetTime  = idspkg.ArgSetTime

	Marshal       = jsoncodec.Marshal
	MarshalIndent = jsoncodec.MarshalIndent
	Unmarshal     = jsoncodec.Unmarshal
	Encode        = jsoncodec.Encode

	ErrDescriptorNotFound = errspkg.ErrDescriptorNotFound
	ErrPoolRequired       = errspkg.ErrPoolRequired
	ErrDelegateRequired   = errspkg.ErrDelegateRequired
	ErrTypeNameRequired   = errspkg.ErrTypeNameRequired
	ErrOverrideRequired   = errspkg.ErrOverrideRequired
	ErrConfigRequired     = errspkg.ErrConfigRequired
	ErrLoggerRequired     = errspkg.ErrLoggerRequired
	ErrOverridesFrozen    = errspkg.ErrOverridesFrozen
	ErrFlattenRequired    = errspkg.ErrFlattenRequired
	ErrRouterRequired     = errspkg.ErrRouterRequired
	ErrTopicRequired      = errspkg.ErrTopicRequired
)

// Metadata keys read and written by the args handler.
const (
	MetadataKeyTypeName      = handlerpkg.MetadataKeyTypeName
	MetadataKeyArgSetID      = handlerpkg.MetadataKeyArgSetID
	MetadataKeyCorrelationID = handlerpkg.MetadataKeyCorrelationID
)

// Levels accepted by NewLoggingAt.
const (
	LogLevelTrace = loggingpkg.LevelTrace
	LogLevelDebug = loggingpkg.LevelDebug
	LogLevelInfo  = loggingpkg.LevelInfo
)

const DefaultKeyPrefixCapacity = argspkg.DefaultKeyPrefixCapacity
