//go:build !android

package utils

import "testing"

// TestStorageDefault 测试非 Android 平台的存储辅助函数
func TestStorageDefault(t *testing.T) {
	if err := EnsureStorageDir(); err != nil {
		t.Errorf("EnsureStorageDir() should be a no-op, got %v", err)
	}
	if got := GetStoragePath(); got != "" {
		t.Errorf("GetStoragePath() = %q, want empty", got)
	}
}
