package mdb

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for pipeline events.
var (
	SignalPipelineCreated = capitan.NewSignal("mdb.pipeline.created", "Pipeline instantiated")
	SignalDumpStart       = capitan.NewSignal("mdb.dump.start", "Dump flow beginning")
	SignalDumpComplete    = capitan.NewSignal("mdb.dump.complete", "Dump flow finished")
	SignalBuildStart      = capitan.NewSignal("mdb.build.start", "Build flow beginning")
	SignalBuildComplete   = capitan.NewSignal("mdb.build.complete", "Build flow finished")
)

// Keys for typed event data.
var (
	KeyContentType = capitan.NewStringKey("content_type")
	KeyVersion     = capitan.NewStringKey("version")
	KeySize        = capitan.NewIntKey("size")
	KeySongCount   = capitan.NewIntKey("song_count")
	KeyCourseCount = capitan.NewIntKey("course_count")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

// emitPipelineCreated emits an event when a pipeline is created.
func emitPipelineCreated(ctx context.Context, contentType string, version Version) {
	capitan.Emit(ctx, SignalPipelineCreated,
		KeyContentType.Field(contentType),
		KeyVersion.Field(string(version)),
	)
}

// emitDumpStart emits an event when a dump flow begins.
func emitDumpStart(ctx context.Context, contentType string, version Version, size int) {
	capitan.Emit(ctx, SignalDumpStart,
		KeyContentType.Field(contentType),
		KeyVersion.Field(string(version)),
		KeySize.Field(size),
	)
}

// emitDumpComplete emits an event when a dump flow finishes.
func emitDumpComplete(ctx context.Context, contentType string, version Version, songs, courses int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyVersion.Field(string(version)),
		KeySongCount.Field(songs),
		KeyCourseCount.Field(courses),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDumpComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDumpComplete, fields...)
	}
}

// emitBuildStart emits an event when a build flow begins.
func emitBuildStart(ctx context.Context, contentType string, version Version, size int) {
	capitan.Emit(ctx, SignalBuildStart,
		KeyContentType.Field(contentType),
		KeyVersion.Field(string(version)),
		KeySize.Field(size),
	)
}

// emitBuildComplete emits an event when a build flow finishes.
func emitBuildComplete(ctx context.Context, contentType string, version Version, songs, courses int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyVersion.Field(string(version)),
		KeySongCount.Field(songs),
		KeyCourseCount.Field(courses),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalBuildComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalBuildComplete, fields...)
	}
}
