package exporter

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/xuri/excelize/v2"

	"ceanalyzer/internal/calculator"
	"ceanalyzer/internal/model"
)

func buildTestBundle(t *testing.T) *model.ResultBundle {
	t.Helper()

	calc := calculator.NewCalculator(model.DefaultUtilities(), calculator.DefaultBounds())
	bundle, err := calc.Aggregate(model.DefaultParameters())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	return bundle
}

func cellValue(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()

	v, err := f.GetCellValue(sheet, cell)
	if err != nil {
		t.Fatalf("GetCellValue(%s!%s): %v", sheet, cell, err)
	}
	return v
}

func cellFloat(t *testing.T, f *excelize.File, sheet, cell string) float64 {
	t.Helper()

	raw := cellValue(t, f, sheet, cell)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		t.Fatalf("%s!%s 不是数值: %q", sheet, cell, raw)
	}
	return v
}

// TestExport_SheetOrder 三个工作表按固定顺序写入
func TestExport_SheetOrder(t *testing.T) {
	t.Parallel()

	exp := NewExporter(buildTestBundle(t))
	f, err := exp.Export(ExportOptions{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	sheets := f.GetSheetList()
	if len(sheets) != len(SheetOrder) {
		t.Fatalf("工作表数量 = %d, want %d", len(sheets), len(SheetOrder))
	}
	for i, name := range SheetOrder {
		if sheets[i] != name {
			t.Errorf("第 %d 个工作表 = %q, want %q", i, sheets[i], name)
		}
	}
}

// TestExport_SheetContents 核对三张表的表头与数据
func TestExport_SheetContents(t *testing.T) {
	t.Parallel()

	bundle := buildTestBundle(t)
	exp := NewExporter(bundle)
	f, err := exp.Export(ExportOptions{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	// 敏感性分析表：8 行数据，顺序与参数枚举一致
	if got := cellValue(t, f, SheetSensitivity, "A1"); got != "参数" {
		t.Errorf("敏感性表 A1 = %q", got)
	}
	for i, row := range bundle.Sensitivity {
		r := strconv.Itoa(2 + i)
		if got := cellValue(t, f, SheetSensitivity, "B"+r); got != string(row.Key) {
			t.Errorf("敏感性表第 %d 行标识 = %q, want %q", i, got, row.Key)
		}
		if got := cellFloat(t, f, SheetSensitivity, "C"+r); got != row.Low {
			t.Errorf("敏感性表 %s Low = %v, want %v", row.Key, got, row.Low)
		}
		if got := cellFloat(t, f, SheetSensitivity, "E"+r); got != row.Range {
			t.Errorf("敏感性表 %s Range = %v, want %v", row.Key, got, row.Range)
		}
	}

	// 基准 ICER 表
	if got := cellFloat(t, f, SheetBaseICER, "A2"); got != bundle.BaseICER.Value {
		t.Errorf("基准 ICER = %v, want %v", got, bundle.BaseICER.Value)
	}

	// 成本与 QALY 汇总表
	if got := cellValue(t, f, SheetSummary, "A2"); got != "替尔泊肽组" {
		t.Errorf("汇总表 A2 = %q", got)
	}
	if got := cellFloat(t, f, SheetSummary, "B2"); got != bundle.Summary[0].Cost {
		t.Errorf("汇总表成本 = %v, want %v", got, bundle.Summary[0].Cost)
	}
	if got := cellFloat(t, f, SheetSummary, "C3"); got != bundle.Summary[1].QALY {
		t.Errorf("汇总表 QALY = %v, want %v", got, bundle.Summary[1].QALY)
	}
}

// TestExport_UndefinedICERCell 无定义 ICER 渲染为 N/A，绝不写入 Inf/NaN
func TestExport_UndefinedICERCell(t *testing.T) {
	t.Parallel()

	params := model.DefaultParameters()
	params[model.ParamMaceTPS] = params[model.ParamMaceTPT]
	params[model.ParamMortTPS] = params[model.ParamMortTPT]

	calc := calculator.NewCalculator(model.DefaultUtilities(), calculator.DefaultBounds())
	bundle, err := calc.Aggregate(params)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	exp := NewExporter(bundle)
	f, err := exp.Export(ExportOptions{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	if got := cellValue(t, f, SheetBaseICER, "A2"); got != "N/A" {
		t.Errorf("无定义基准 ICER 单元格 = %q, want N/A", got)
	}

	// cvd_cost 行在该参数表下无定义
	for i, row := range bundle.Sensitivity {
		if row.Key != model.ParamCVDCost {
			continue
		}
		r := strconv.Itoa(2 + i)
		if got := cellValue(t, f, SheetSensitivity, "C"+r); got != "N/A" {
			t.Errorf("无定义下界单元格 = %q, want N/A", got)
		}
	}
}

// TestExportToFile 保存后可重新打开且内容一致
func TestExportToFile(t *testing.T) {
	t.Parallel()

	bundle := buildTestBundle(t)
	path := filepath.Join(t.TempDir(), "out.xlsx")

	var events []ProgressEvent
	opts := ExportOptions{Progress: func(p ProgressEvent) { events = append(events, p) }}

	exp := NewExporter(bundle)
	if err := exp.ExportToFile(path, opts); err != nil {
		t.Fatalf("ExportToFile: %v", err)
	}

	if len(events) == 0 {
		t.Fatalf("未收到进度事件")
	}
	if events[0].Percent != 0 || events[len(events)-1].Percent != 100 {
		t.Errorf("进度事件首尾 = %d/%d", events[0].Percent, events[len(events)-1].Percent)
	}
	for i := 1; i < len(events); i++ {
		if events[i].Percent < events[i-1].Percent {
			t.Errorf("进度回退: %d → %d", events[i-1].Percent, events[i].Percent)
		}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("重新打开导出文件: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	if got := cellFloat(t, f, SheetBaseICER, "A2"); got != bundle.BaseICER.Value {
		t.Errorf("重新打开后基准 ICER = %v, want %v", got, bundle.BaseICER.Value)
	}
}

// TestExportToFile_BadPath 目录不存在时返回错误（一次性运行，无重试）
func TestExportToFile_BadPath(t *testing.T) {
	t.Parallel()

	exp := NewExporter(buildTestBundle(t))
	err := exp.ExportToFile(filepath.Join(t.TempDir(), "no_such_dir", "out.xlsx"), ExportOptions{})
	if err == nil {
		t.Fatalf("期望写入失败")
	}
}

func TestExport_NilBundle(t *testing.T) {
	t.Parallel()

	exp := NewExporter(nil)
	if _, err := exp.Export(ExportOptions{}); err == nil {
		t.Fatalf("期望空结果包错误")
	}
}
