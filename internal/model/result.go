package model

// ICER 增量成本效果比。QALY 增量恰好为零时无法定义比值，
// 此时 Defined 为 false，Value 不具意义，展示与导出均渲染为 N/A。
type ICER struct {
	Value   float64 `json:"value"`
	Defined bool    `json:"defined"`
}

// ArmOutcome 单个治疗组的期望成本与期望 QALY
type ArmOutcome struct {
	Cost float64 `json:"cost"` // 期望成本（元）
	QALY float64 `json:"qaly"` // 期望质量调整生命年
}

// OutcomeResult 一次模型求值的完整输出，纯值对象，返回后不再变更
type OutcomeResult struct {
	Test      ArmOutcome `json:"test"`     // 替尔泊肽组
	Standard  ArmOutcome `json:"standard"` // 司美格鲁肽组
	DeltaCost float64    `json:"deltaCost"`
	DeltaQALY float64    `json:"deltaQaly"`
	ICER      ICER       `json:"icer"`
}

// SensitivityRow 单因素敏感性分析结果行（每个参数一行）
type SensitivityRow struct {
	Key     ParameterKey `json:"key"`     // 参数标识
	Label   string       `json:"label"`   // 参数名称
	Low     float64      `json:"low"`     // 下界 ICER（保留 2 位小数）
	High    float64      `json:"high"`    // 上界 ICER（保留 2 位小数）
	Range   float64      `json:"range"`   // |High − Low|（保留 2 位小数）
	Defined bool         `json:"defined"` // 两端 ICER 是否均可定义
}

// ArmSummaryRow 成本与 QALY 汇总表行
type ArmSummaryRow struct {
	Arm   string  `json:"arm"`   // 治疗组标识
	Label string  `json:"label"` // 治疗组名称
	Cost  float64 `json:"cost"`  // 期望成本，保留 2 位小数
	QALY  float64 `json:"qaly"`  // 期望 QALY，保留 4 位小数
}

// ResultBundle 一次运行的全部结果表，构建后直接交给导出/展示协作方
type ResultBundle struct {
	Base        OutcomeResult    `json:"base"`        // 基准病例原始求值结果（未舍入）
	BaseICER    ICER             `json:"baseIcer"`    // 基准 ICER，保留 2 位小数
	Summary     []ArmSummaryRow  `json:"summary"`     // 成本与 QALY 汇总（2 行）
	Sensitivity []SensitivityRow `json:"sensitivity"` // 单因素敏感性分析（8 行，固定顺序）
}
