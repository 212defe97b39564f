package calculator

import (
	"math"

	"ceanalyzer/internal/model"
)

// Sweep 单因素敏感性分析：按固定参数顺序，每次只扰动一个参数，
// 其余 7 个参数保持基准值，分别在下界与上界各求值一次。
// 不评估任何参数组合；舍入仅发生在行输出时，ICER 运算本身不舍入。
func (c *Calculator) Sweep(base model.ParameterSet) ([]model.SensitivityRow, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}

	rows := make([]model.SensitivityRow, 0, len(model.ParameterOrder))
	for _, key := range model.ParameterOrder {
		baseValue := base[key]

		lowResult, err := c.Evaluate(base.With(key, baseValue*c.bounds.Lower))
		if err != nil {
			return nil, err
		}
		highResult, err := c.Evaluate(base.With(key, baseValue*c.bounds.Upper))
		if err != nil {
			return nil, err
		}

		row := model.SensitivityRow{
			Key:     key,
			Label:   model.Label(key),
			Defined: lowResult.ICER.Defined && highResult.ICER.Defined,
		}
		if row.Defined {
			row.Low = round2(lowResult.ICER.Value)
			row.High = round2(highResult.ICER.Value)
			row.Range = round2(math.Abs(highResult.ICER.Value - lowResult.ICER.Value))
		}
		rows = append(rows, row)
	}

	return rows, nil
}
