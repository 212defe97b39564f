package calculator

import "ceanalyzer/internal/model"

// 治疗组标识与展示名称
const (
	ArmTest     = "tirzepatide"
	ArmStandard = "semaglutide"
)

var armLabels = map[string]string{
	ArmTest:     "替尔泊肽组",
	ArmStandard: "司美格鲁肽组",
}

// ArmLabel 治疗组展示名称
func ArmLabel(arm string) string {
	if label, ok := armLabels[arm]; ok {
		return label
	}
	return arm
}

// Aggregate 汇总一次运行的全部结果表：基准求值 1 次 + 敏感性分析 16 次求值。
// 成本保留 2 位小数，QALY 保留 4 位小数，ICER 保留 2 位小数；
// 仅返回结果包，不负责导出与展示。
func (c *Calculator) Aggregate(base model.ParameterSet) (*model.ResultBundle, error) {
	baseResult, err := c.Evaluate(base)
	if err != nil {
		return nil, err
	}

	sweepRows, err := c.Sweep(base)
	if err != nil {
		return nil, err
	}

	baseICER := model.ICER{}
	if baseResult.ICER.Defined {
		baseICER = model.ICER{Value: round2(baseResult.ICER.Value), Defined: true}
	}

	summary := []model.ArmSummaryRow{
		{
			Arm:   ArmTest,
			Label: ArmLabel(ArmTest),
			Cost:  round2(baseResult.Test.Cost),
			QALY:  round4(baseResult.Test.QALY),
		},
		{
			Arm:   ArmStandard,
			Label: ArmLabel(ArmStandard),
			Cost:  round2(baseResult.Standard.Cost),
			QALY:  round4(baseResult.Standard.QALY),
		},
	}

	return &model.ResultBundle{
		Base:        baseResult,
		BaseICER:    baseICER,
		Summary:     summary,
		Sensitivity: sweepRows,
	}, nil
}
