package calculator

import (
	"fmt"
	"math"

	"ceanalyzer/internal/model"
)

// SensitivityBounds 单因素敏感性分析扰动系数
type SensitivityBounds struct {
	Lower float64 // 下界乘数，默认 0.8
	Upper float64 // 上界乘数，默认 1.2
}

// DefaultBounds 默认 ±20% 扰动
func DefaultBounds() SensitivityBounds {
	return SensitivityBounds{Lower: 0.8, Upper: 1.2}
}

// Validate 校验扰动系数：0 < Lower < 1 < Upper
func (b SensitivityBounds) Validate() error {
	if math.IsNaN(b.Lower) || math.IsNaN(b.Upper) {
		return fmt.Errorf("扰动系数无效: lower=%v upper=%v", b.Lower, b.Upper)
	}
	if b.Lower <= 0 || b.Lower >= 1 {
		return fmt.Errorf("下界乘数必须在 (0,1) 区间: %v", b.Lower)
	}
	if b.Upper <= 1 || math.IsInf(b.Upper, 0) {
		return fmt.Errorf("上界乘数必须大于 1 且有限: %v", b.Upper)
	}
	return nil
}

// Calculator 决策分析模型计算器
type Calculator struct {
	utilities model.Utilities
	bounds    SensitivityBounds
}

// NewCalculator 创建计算器
func NewCalculator(utilities model.Utilities, bounds SensitivityBounds) *Calculator {
	return &Calculator{
		utilities: utilities,
		bounds:    bounds,
	}
}

// Bounds 当前扰动系数
func (c *Calculator) Bounds() SensitivityBounds {
	return c.bounds
}

// Utilities 当前效用常量
func (c *Calculator) Utilities() model.Utilities {
	return c.utilities
}

// Evaluate 求值结果模型：按参数表计算两组的期望成本、期望 QALY 与 ICER。
// 纯函数，无副作用；相同输入产生逐位一致的输出。
func (c *Calculator) Evaluate(params model.ParameterSet) (model.OutcomeResult, error) {
	if err := params.Validate(); err != nil {
		return model.OutcomeResult{}, err
	}

	test := c.evaluateArm(
		params[model.ParamMaceTPT],
		params[model.ParamMortTPT],
		params[model.ParamDrugCostT],
		params[model.ParamCVDCost],
		params[model.ParamDMCost],
	)
	standard := c.evaluateArm(
		params[model.ParamMaceTPS],
		params[model.ParamMortTPS],
		params[model.ParamDrugCostS],
		params[model.ParamCVDCost],
		params[model.ParamDMCost],
	)

	deltaCost := standard.Cost - test.Cost
	deltaQALY := standard.QALY - test.QALY

	// QALY 增量为零时比值无定义，显式标记而不是让 ±Inf/NaN 流入结果
	icer := model.ICER{}
	if deltaQALY != 0 {
		icer = model.ICER{Value: deltaCost / deltaQALY, Defined: true}
	}

	return model.OutcomeResult{
		Test:      test,
		Standard:  standard,
		DeltaCost: deltaCost,
		DeltaQALY: deltaQALY,
		ICER:      icer,
	}, nil
}

// evaluateArm 计算单个治疗组的期望成本与期望 QALY。
// 无事件存活概率为补概率，两个转移概率之和超过 1 时截断为 0，不视为错误。
// 死亡状态不计成本项；药品成本为与结局无关的固定项。
func (c *Calculator) evaluateArm(pEvent, pDead, drugCost, cvdCost, dmCost float64) model.ArmOutcome {
	pWell := 1 - pEvent - pDead
	if pWell < 0 {
		pWell = 0
	}

	cost := pEvent*cvdCost + pWell*dmCost + drugCost
	qaly := pEvent*c.utilities.MACE + pWell*c.utilities.NoMACE + pDead*c.utilities.Dead

	return model.ArmOutcome{Cost: cost, QALY: qaly}
}
