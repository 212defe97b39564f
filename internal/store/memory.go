package store

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"ceanalyzer/internal/model"
)

// AnalysisStore 分析会话内存存储：当前参数值（可经 API 修改）与导出运行记录。
// 仅存活于进程内，除导出产物外不做任何持久化。
type AnalysisStore struct {
	mu      sync.RWMutex
	base    model.ParameterSet
	current model.ParameterSet
	runs    []ExportRun
}

// ExportRun 一次导出运行记录
type ExportRun struct {
	ID        string    `json:"id"`
	FilePath  string    `json:"filePath"`
	CreatedAt time.Time `json:"createdAt"`
}

// 只保留最近若干次导出记录
const maxRunHistory = 20

// NewAnalysisStore 创建存储，base 作为重置基准
func NewAnalysisStore(base model.ParameterSet) *AnalysisStore {
	return &AnalysisStore{
		base:    base.Clone(),
		current: base.Clone(),
	}
}

// Parameters 当前参数表副本
func (s *AnalysisStore) Parameters() model.ParameterSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// BaseParameters 基准参数表副本
func (s *AnalysisStore) BaseParameters() model.ParameterSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.base.Clone()
}

// UpdateParameter 更新单个参数值，返回更新后的值
func (s *AnalysisStore) UpdateParameter(key model.ParameterKey, value float64) (float64, error) {
	if _, ok := model.Meta(key); !ok {
		return 0, fmt.Errorf("未知参数: %s", key)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &model.ValidationError{Key: key, Reason: "非有限数值"}
	}
	if value < 0 {
		return 0, &model.ValidationError{Key: key, Reason: "不能为负数"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current[key] = value
	return value, nil
}

// Reset 恢复基准参数
func (s *AnalysisStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = s.base.Clone()
}

// Modified 当前参数是否偏离基准
func (s *AnalysisStore) Modified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for k, v := range s.base {
		if s.current[k] != v {
			return true
		}
	}
	return false
}

// RecordRun 记录一次导出运行，返回运行 ID
func (s *AnalysisStore) RecordRun(filePath string) ExportRun {
	s.mu.Lock()
	defer s.mu.Unlock()

	run := ExportRun{
		ID:        uuid.NewString(),
		FilePath:  filePath,
		CreatedAt: time.Now(),
	}
	s.runs = append(s.runs, run)
	if len(s.runs) > maxRunHistory {
		s.runs = s.runs[len(s.runs)-maxRunHistory:]
	}
	return run
}

// Runs 导出运行记录副本（按时间先后）
func (s *AnalysisStore) Runs() []ExportRun {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ExportRun, len(s.runs))
	copy(out, s.runs)
	return out
}
