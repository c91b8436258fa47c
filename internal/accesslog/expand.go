package accesslog

// ExpandState 日志详情的展开状态，同一时间最多展开一条
type ExpandState struct {
	expanded string
}

// Toggle 展开指定日志；若它已展开则收起
func (s *ExpandState) Toggle(id string) {
	if s.expanded == id {
		s.expanded = ""
		return
	}
	s.expanded = id
}

// IsExpanded 指定日志是否处于展开状态
func (s *ExpandState) IsExpanded(id string) bool {
	return id != "" && s.expanded == id
}

// Expanded 当前展开的日志 ID，没有则为空串
func (s *ExpandState) Expanded() string {
	return s.expanded
}
