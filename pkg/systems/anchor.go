package systems

import "github.com/decker502/mazetour/pkg/path"

// minAnchorSpan 锚点到行进方向终点的最小参数跨度
// 小于此值时锚点作废：正向从路径起点开始，反向从路径终点开始
const minAnchorSpan = 0.05

// entryAnchor 根据最近点搜索结果和进入方向确定锚点
//
// 正向进入时锚点之后的路径由 local 0..1 覆盖，反向进入时锚点之前的路径
// 由 local 0..1 覆盖。锚点落在行进方向的远端时没有可走的路径，
// 改用对应端点，避免实体在整个区段内停在原地。
func entryAnchor(res path.ClosestResult, reverse bool) float64 {
	if reverse {
		if !res.Found || res.T < minAnchorSpan {
			return 1
		}
		return res.T
	}
	if !res.Found || 1-res.T < minAnchorSpan {
		return 0
	}
	return res.T
}

// anchoredParameter 把区段内进度 local ∈ [0, 1] 映射为路径参数
//   - 正向: anchor + local * (1 - anchor)
//   - 反向: local * anchor
func anchoredParameter(anchor, local float64, reverse bool) float64 {
	if reverse {
		return local * anchor
	}
	return anchor + local*(1-anchor)
}
