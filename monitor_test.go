package gupty

import "testing"

func TestMonitorWindowShortScriptShowsAll(t *testing.T) {
	start, end := monitorWindow(5, 2, monitorPreLines, monitorTotalLines)
	if start != 0 || end != 5 {
		t.Errorf("monitorWindow(short) = (%d,%d), want (0,5)", start, end)
	}
}

func TestMonitorWindowNearStart(t *testing.T) {
	start, end := monitorWindow(100, 2, 10, 30)
	if start != 0 {
		t.Errorf("start = %d, want 0 (current near the beginning clamps to 0)", start)
	}
	if end != 30 {
		t.Errorf("end = %d, want 30", end)
	}
}

func TestMonitorWindowMiddle(t *testing.T) {
	start, end := monitorWindow(100, 50, 10, 30)
	if start != 40 {
		t.Errorf("start = %d, want 40", start)
	}
	if end != 70 {
		t.Errorf("end = %d, want 70", end)
	}
}

func TestMonitorWindowNearEnd(t *testing.T) {
	start, end := monitorWindow(100, 95, 10, 30)
	if end != 100 {
		t.Errorf("end = %d, want 100 (window clamped to the script length)", end)
	}
	if start != 70 {
		t.Errorf("start = %d, want 70", start)
	}
}

func TestMonitorWindowEmptyScript(t *testing.T) {
	start, end := monitorWindow(0, 0, 10, 30)
	if start != 0 || end != 0 {
		t.Errorf("monitorWindow(empty) = (%d,%d), want (0,0)", start, end)
	}
}

func TestRefreshMonitorNilFileIsNoop(t *testing.T) {
	s := &Session{}
	s.refreshMonitor() // must not panic with no monitor file configured
}
