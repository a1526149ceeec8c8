package display

import (
	"testing"
	"time"
)

// MockFrame fills snapshots with a fixed byte value
type MockFrame struct {
	size  int
	value byte
	calls int
}

func (m *MockFrame) Snapshot(dst []byte) []byte {
	m.calls++
	if cap(dst) < m.size {
		dst = make([]byte, m.size)
	}
	dst = dst[:m.size]
	for i := range dst {
		dst[i] = m.value
	}
	return dst
}

func TestViewer_CopyFrame(t *testing.T) {
	tests := []struct {
		name     string
		source   FrameSource
		expected bool
	}{
		{"no source", nil, false},
		{"render not started", func() Frame { return nil }, false},
		{"wrong size", func() Frame { return &MockFrame{size: 8, value: 1} }, false},
		{"matching frame", func() Frame { return &MockFrame{size: 3 * 2 * 4, value: 9} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewer("test", 3, 2, tt.source)
			if got := v.copyFrame(); got != tt.expected {
				t.Errorf("copyFrame() = %v, expected %v", got, tt.expected)
			}
			if tt.expected && v.pixels[0] != 9 {
				t.Errorf("Expected copied pixels, got %v", v.pixels[:4])
			}
		})
	}
}

func TestViewer_CopyFrameReusesBuffer(t *testing.T) {
	frame := &MockFrame{size: 2 * 2 * 4, value: 3}
	v := NewViewer("test", 2, 2, func() Frame { return frame })

	if !v.copyFrame() {
		t.Fatal("Expected first copy to succeed")
	}
	first := &v.pixels[0]
	frame.value = 5
	if !v.copyFrame() {
		t.Fatal("Expected second copy to succeed")
	}
	if &v.pixels[0] != first {
		t.Error("Expected the pixel buffer to be reused")
	}
	if v.pixels[0] != 5 || frame.calls != 2 {
		t.Errorf("Expected updated pixels after 2 snapshots, got %d after %d", v.pixels[0], frame.calls)
	}
}

func TestViewer_Abort(t *testing.T) {
	v := NewViewer("test", 1, 1, nil)

	select {
	case <-v.Aborted():
		t.Fatal("Viewer should not start aborted")
	default:
	}

	v.abort()
	v.abort()

	select {
	case <-v.Aborted():
	default:
		t.Fatal("Expected Aborted to be closed")
	}
}

func TestViewer_CloseAfterFinishIsNotAbort(t *testing.T) {
	v := NewViewer("test", 1, 1, nil)
	v.Finish(1500 * time.Millisecond)
	v.abort()

	select {
	case <-v.Aborted():
		t.Fatal("Closing after Finish should not abort")
	default:
	}

	if title := v.currentTitle(); title != "Render time: 1.500s" {
		t.Errorf("Expected render time title, got %q", title)
	}
	if !v.dirty.Load() {
		t.Error("Expected Finish to request a redraw")
	}
}

func TestViewer_Layout(t *testing.T) {
	v := NewViewer("test", 320, 200, nil)
	if w, h := v.Layout(1920, 1080); w != 320 || h != 200 {
		t.Errorf("Expected 320x200 layout, got %dx%d", w, h)
	}
}
