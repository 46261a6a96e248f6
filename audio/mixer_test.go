package audio

import "testing"

func TestMixerSumsVoices(t *testing.T) {
	m := NewMixer(2, 22050, 1)
	if err := m.Play(0, []int16{100, 100, 100, 100}, false); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if err := m.Play(1, []int16{-30, -30, -30, -30}, false); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	dst := make([]int16, 4)
	if n := m.ReadFrames(dst); n != 4 {
		t.Fatalf("ReadFrames = %d frames, want 4", n)
	}
	for i, s := range dst {
		if s != 70 {
			t.Errorf("frame %d = %d, want 70", i, s)
		}
	}
}

func TestMixerSaturates(t *testing.T) {
	m := NewMixer(2, 22050, 1)
	m.Play(0, []int16{30000, -30000}, false)
	m.Play(1, []int16{30000, -30000}, false)
	dst := make([]int16, 2)
	m.ReadFrames(dst)
	if dst[0] != 32767 {
		t.Errorf("positive clip = %d, want 32767", dst[0])
	}
	if dst[1] != -32768 {
		t.Errorf("negative clip = %d, want -32768", dst[1])
	}
}

func TestMixerOneShotEnds(t *testing.T) {
	m := NewMixer(1, 22050, 1)
	m.Play(0, []int16{5, 5}, false)
	dst := make([]int16, 4)
	m.ReadFrames(dst)
	if dst[0] != 5 || dst[1] != 5 {
		t.Errorf("one-shot samples = %v", dst[:2])
	}
	if dst[2] != 0 || dst[3] != 0 {
		t.Errorf("one-shot kept playing: %v", dst[2:])
	}
}

func TestMixerLoops(t *testing.T) {
	m := NewMixer(1, 22050, 1)
	m.Play(0, []int16{1, 2}, true)
	dst := make([]int16, 6)
	m.ReadFrames(dst)
	want := []int16{1, 2, 1, 2, 1, 2}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("loop sample %d = %d, want %d", i, dst[i], want[i])
			break
		}
	}
}

func TestMixerStereoInterleaving(t *testing.T) {
	m := NewMixer(1, 22050, 2)
	m.Play(0, []int16{10, -10, 20, -20}, false)
	dst := make([]int16, 4)
	m.ReadFrames(dst)
	want := []int16{10, -10, 20, -20}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestMixerRejectsBadArguments(t *testing.T) {
	m := NewMixer(2, 22050, 2)
	if err := m.Play(2, []int16{0, 0}, false); err == nil {
		t.Error("accepted out-of-range voice")
	}
	if err := m.Play(0, []int16{0, 0, 0}, false); err == nil {
		t.Error("accepted ragged frame count")
	}
	if err := m.Stop(5); err == nil {
		t.Error("accepted out-of-range stop")
	}
}
