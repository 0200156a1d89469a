package game

import "time"

// Clock 提供当前时间
// 生产环境使用 SystemClock，测试中使用可手动推进的时钟
type Clock interface {
	Now() time.Time
}

// SystemClock 系统墙钟（带单调时钟读数）
type SystemClock struct{}

// Now 返回当前系统时间
func (SystemClock) Now() time.Time {
	return time.Now()
}
