package model

import (
	"fmt"
	"math"
)

// ParameterKey 模型输入参数标识
type ParameterKey string

// 8 个固定输入参数：两组 MACE 转移概率、两组死亡转移概率、两项事件成本、两项药品成本
const (
	ParamMaceTPT   ParameterKey = "mace_tp_t"   // 替尔泊肽组 MACE 转移概率
	ParamMortTPT   ParameterKey = "mort_tp_t"   // 替尔泊肽组死亡转移概率
	ParamMaceTPS   ParameterKey = "mace_tp_s"   // 司美格鲁肽组 MACE 转移概率
	ParamMortTPS   ParameterKey = "mort_tp_s"   // 司美格鲁肽组死亡转移概率
	ParamCVDCost   ParameterKey = "cvd_cost"    // 心血管事件成本
	ParamDMCost    ParameterKey = "dm_cost"     // 疾病管理成本
	ParamDrugCostT ParameterKey = "drug_cost_t" // 替尔泊肽药品成本
	ParamDrugCostS ParameterKey = "drug_cost_s" // 司美格鲁肽药品成本
)

// ParameterOrder 参数固定枚举顺序（敏感性分析按此顺序输出，不重新排序）
var ParameterOrder = []ParameterKey{
	ParamMaceTPT,
	ParamMortTPT,
	ParamMaceTPS,
	ParamMortTPS,
	ParamCVDCost,
	ParamDMCost,
	ParamDrugCostT,
	ParamDrugCostS,
}

// Parameter 参数元信息（用于 API 与报告展示）
type Parameter struct {
	Key   ParameterKey `json:"key"`   // 参数标识
	Label string       `json:"label"` // 参数名称
	Unit  string       `json:"unit"`  // 单位（概率 或 元）
}

var parameterMeta = map[ParameterKey]Parameter{
	ParamMaceTPT:   {Key: ParamMaceTPT, Label: "替尔泊肽组 MACE 转移概率", Unit: "概率"},
	ParamMortTPT:   {Key: ParamMortTPT, Label: "替尔泊肽组死亡转移概率", Unit: "概率"},
	ParamMaceTPS:   {Key: ParamMaceTPS, Label: "司美格鲁肽组 MACE 转移概率", Unit: "概率"},
	ParamMortTPS:   {Key: ParamMortTPS, Label: "司美格鲁肽组死亡转移概率", Unit: "概率"},
	ParamCVDCost:   {Key: ParamCVDCost, Label: "心血管事件成本", Unit: "元"},
	ParamDMCost:    {Key: ParamDMCost, Label: "疾病管理成本", Unit: "元"},
	ParamDrugCostT: {Key: ParamDrugCostT, Label: "替尔泊肽药品成本", Unit: "元"},
	ParamDrugCostS: {Key: ParamDrugCostS, Label: "司美格鲁肽药品成本", Unit: "元"},
}

// Meta 获取参数元信息
func Meta(key ParameterKey) (Parameter, bool) {
	m, ok := parameterMeta[key]
	return m, ok
}

// Label 获取参数展示名称（未知参数返回原始标识）
func Label(key ParameterKey) string {
	if m, ok := parameterMeta[key]; ok {
		return m.Label
	}
	return string(key)
}

// ParameterSet 基准输入参数表：参数标识 → 数值
type ParameterSet map[ParameterKey]float64

// DefaultParameters 基准病例参数（硬编码基准值）
func DefaultParameters() ParameterSet {
	return ParameterSet{
		ParamMaceTPT:   0.425,
		ParamMortTPT:   0.512,
		ParamMaceTPS:   0.444,
		ParamMortTPS:   0.367,
		ParamCVDCost:   14888.32,
		ParamDMCost:    13107.60,
		ParamDrugCostT: 1079.77,
		ParamDrugCostS: 997.59,
	}
}

// Clone 复制参数表
func (p ParameterSet) Clone() ParameterSet {
	out := make(ParameterSet, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// With 返回替换单个参数后的副本，原参数表不变
func (p ParameterSet) With(key ParameterKey, value float64) ParameterSet {
	out := p.Clone()
	out[key] = value
	return out
}

// ValidationError 参数校验错误，指明出错的参数
type ValidationError struct {
	Key    ParameterKey
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("参数 %s 无效: %s", e.Key, e.Reason)
}

// Validate 校验参数表：8 个参数齐全，取值为有限非负实数
func (p ParameterSet) Validate() error {
	for _, key := range ParameterOrder {
		v, ok := p[key]
		if !ok {
			return &ValidationError{Key: key, Reason: "缺失"}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ValidationError{Key: key, Reason: "非有限数值"}
		}
		if v < 0 {
			return &ValidationError{Key: key, Reason: "不能为负数"}
		}
	}
	return nil
}

// Utilities 健康效用常量，作为显式配置传入计算器
type Utilities struct {
	NoMACE float64 `json:"noMace"` // 无不良事件效用
	MACE   float64 `json:"mace"`   // 发生 MACE 效用
	Dead   float64 `json:"dead"`   // 死亡效用
}

// DefaultUtilities 默认健康效用常量
func DefaultUtilities() Utilities {
	return Utilities{
		NoMACE: 0.85,
		MACE:   0.70,
		Dead:   0,
	}
}
