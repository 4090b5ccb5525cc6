package mdb

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEmitPipelineCreated(_ *testing.T) {
	// Should not panic
	emitPipelineCreated(context.Background(), "application/yaml", V8)
}

func TestEmitDumpStart(_ *testing.T) {
	emitDumpStart(context.Background(), "application/yaml", V8, 488)
}

func TestEmitDumpComplete_Success(_ *testing.T) {
	emitDumpComplete(context.Background(), "application/yaml", V8, 2, 1, 100*time.Millisecond, nil)
}

func TestEmitDumpComplete_Error(_ *testing.T) {
	emitDumpComplete(context.Background(), "application/yaml", V8, 0, 0, 100*time.Millisecond, errors.New("test error"))
}

func TestEmitBuildStart(_ *testing.T) {
	emitBuildStart(context.Background(), "application/yaml", V8, 2048)
}

func TestEmitBuildComplete_Success(_ *testing.T) {
	emitBuildComplete(context.Background(), "application/yaml", V8, 2, 1, 100*time.Millisecond, nil)
}

func TestEmitBuildComplete_Error(_ *testing.T) {
	emitBuildComplete(context.Background(), "application/yaml", V8, 0, 0, 100*time.Millisecond, errors.New("test error"))
}

func TestSignalVariables(t *testing.T) {
	// Verify signals are properly initialized
	signals := []struct {
		name   string
		signal interface{}
	}{
		{"SignalPipelineCreated", SignalPipelineCreated},
		{"SignalDumpStart", SignalDumpStart},
		{"SignalDumpComplete", SignalDumpComplete},
		{"SignalBuildStart", SignalBuildStart},
		{"SignalBuildComplete", SignalBuildComplete},
	}

	for _, s := range signals {
		if s.signal == nil {
			t.Errorf("%s is nil", s.name)
		}
	}
}

func TestKeyVariables(t *testing.T) {
	// Verify keys are properly initialized
	keys := []struct {
		name string
		key  interface{}
	}{
		{"KeyContentType", KeyContentType},
		{"KeyVersion", KeyVersion},
		{"KeySize", KeySize},
		{"KeySongCount", KeySongCount},
		{"KeyCourseCount", KeyCourseCount},
		{"KeyDuration", KeyDuration},
		{"KeyError", KeyError},
	}

	for _, k := range keys {
		if k.key == nil {
			t.Errorf("%s is nil", k.name)
		}
	}
}
