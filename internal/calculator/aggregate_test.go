package calculator

import (
	"math"
	"testing"

	"ceanalyzer/internal/model"
)

// isRoundedTo 检查数值已舍入到指定小数位
func isRoundedTo(v float64, digits int) bool {
	scale := math.Pow(10, float64(digits))
	scaled := v * scale
	return math.Abs(scaled-math.Round(scaled)) < 1e-6
}

func TestAggregate_BundleShape(t *testing.T) {
	t.Parallel()

	calc := newTestCalculator()
	bundle, err := calc.Aggregate(model.DefaultParameters())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	if len(bundle.Summary) != 2 {
		t.Fatalf("汇总表行数 = %d, want 2", len(bundle.Summary))
	}
	if bundle.Summary[0].Arm != ArmTest || bundle.Summary[1].Arm != ArmStandard {
		t.Fatalf("汇总表顺序不符: %s, %s", bundle.Summary[0].Arm, bundle.Summary[1].Arm)
	}
	if bundle.Summary[0].Label != "替尔泊肽组" || bundle.Summary[1].Label != "司美格鲁肽组" {
		t.Fatalf("治疗组名称不符: %s, %s", bundle.Summary[0].Label, bundle.Summary[1].Label)
	}
	if len(bundle.Sensitivity) != len(model.ParameterOrder) {
		t.Fatalf("敏感性表行数 = %d, want %d", len(bundle.Sensitivity), len(model.ParameterOrder))
	}
}

// TestAggregate_PresentationRounding 成本保留 2 位，QALY 保留 4 位，ICER 保留 2 位
func TestAggregate_PresentationRounding(t *testing.T) {
	t.Parallel()

	calc := newTestCalculator()
	bundle, err := calc.Aggregate(model.DefaultParameters())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	for _, row := range bundle.Summary {
		if !isRoundedTo(row.Cost, 2) {
			t.Errorf("%s 成本未舍入到 2 位: %v", row.Arm, row.Cost)
		}
		if !isRoundedTo(row.QALY, 4) {
			t.Errorf("%s QALY 未舍入到 4 位: %v", row.Arm, row.QALY)
		}
	}

	if !bundle.BaseICER.Defined {
		t.Fatalf("基准 ICER 应有定义")
	}
	if !isRoundedTo(bundle.BaseICER.Value, 2) {
		t.Errorf("基准 ICER 未舍入到 2 位: %v", bundle.BaseICER.Value)
	}
	if want := round2(bundle.Base.ICER.Value); bundle.BaseICER.Value != want {
		t.Errorf("基准 ICER = %v, want %v", bundle.BaseICER.Value, want)
	}

	// 原始求值结果保持未舍入
	raw, err := calc.Evaluate(model.DefaultParameters())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if bundle.Base != raw {
		t.Errorf("原始结果被篡改: %+v vs %+v", bundle.Base, raw)
	}
}

// TestAggregate_UndefinedBaseICER 基准 QALY 增量为零时结果包整体标记无定义
func TestAggregate_UndefinedBaseICER(t *testing.T) {
	t.Parallel()

	params := model.DefaultParameters()
	params[model.ParamMaceTPS] = params[model.ParamMaceTPT]
	params[model.ParamMortTPS] = params[model.ParamMortTPT]

	calc := newTestCalculator()
	bundle, err := calc.Aggregate(params)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	if bundle.BaseICER.Defined {
		t.Fatalf("基准 ICER 应标记无定义")
	}
	if bundle.BaseICER.Value != 0 {
		t.Fatalf("无定义 ICER 不应携带数值: %v", bundle.BaseICER.Value)
	}
}

func TestArmLabel(t *testing.T) {
	t.Parallel()

	if got := ArmLabel(ArmTest); got != "替尔泊肽组" {
		t.Fatalf("ArmLabel(%s) = %q", ArmTest, got)
	}
	if got := ArmLabel("unknown"); got != "unknown" {
		t.Fatalf("未知治疗组应返回原始标识: %q", got)
	}
}
