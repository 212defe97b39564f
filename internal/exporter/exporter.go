package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ceanalyzer/internal/model"
)

// 固定输出的三个工作表，按此顺序写入
const (
	SheetSensitivity = "One-Way Sensitivity"
	SheetBaseICER    = "Base ICER"
	SheetSummary     = "Cost and QALY Summary"
)

// SheetOrder 工作表固定顺序
var SheetOrder = []string{SheetSensitivity, SheetBaseICER, SheetSummary}

// 无定义 ICER 的单元格占位文本
const undefinedCell = "N/A"

// Exporter 结果导出器：把结果包写成三个固定工作表的 xlsx 文件
type Exporter struct {
	bundle *model.ResultBundle
}

// NewExporter 创建导出器
func NewExporter(bundle *model.ResultBundle) *Exporter {
	return &Exporter{bundle: bundle}
}

// ExportOptions 导出选项
type ExportOptions struct {
	Progress func(ProgressEvent)
}

// Export 构建工作簿，调用方负责 Close
func (e *Exporter) Export(opts ExportOptions) (*excelize.File, error) {
	if e.bundle == nil {
		return nil, fmt.Errorf("结果包为空，无法导出")
	}

	reportProgress(opts.Progress, 0, "创建工作簿")

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSensitivity); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("创建敏感性分析表失败: %w", err)
	}
	for _, name := range SheetOrder[1:] {
		f.NewSheet(name)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("创建表头样式失败: %w", err)
	}

	reportProgress(opts.Progress, 20, "写入敏感性分析表")
	if err := e.fillSensitivitySheet(f, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}

	reportProgress(opts.Progress, 60, "写入基准 ICER 表")
	if err := e.fillBaseICERSheet(f, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}

	reportProgress(opts.Progress, 80, "写入成本与 QALY 汇总表")
	if err := e.fillSummarySheet(f, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	reportProgress(opts.Progress, 100, "完成")
	return f, nil
}

// ExportToFile 导出并保存到指定路径；写入失败视为致命错误，不做重试
func (e *Exporter) ExportToFile(path string, opts ExportOptions) error {
	f, err := e.Export(opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("写入导出文件失败: %w", err)
	}
	return nil
}

func (e *Exporter) fillSensitivitySheet(f *excelize.File, headerStyle int) error {
	headers := []string{"参数", "标识", "ICER 下界", "ICER 上界", "极差"}
	if err := writeHeaderRow(f, SheetSensitivity, headers, headerStyle); err != nil {
		return err
	}

	for i, row := range e.bundle.Sensitivity {
		r := 2 + i
		if err := setCellValue(f, SheetSensitivity, fmt.Sprintf("A%d", r), row.Label); err != nil {
			return err
		}
		if err := setCellValue(f, SheetSensitivity, fmt.Sprintf("B%d", r), string(row.Key)); err != nil {
			return err
		}
		if err := setICERCell(f, SheetSensitivity, fmt.Sprintf("C%d", r), row.Low, row.Defined); err != nil {
			return err
		}
		if err := setICERCell(f, SheetSensitivity, fmt.Sprintf("D%d", r), row.High, row.Defined); err != nil {
			return err
		}
		if err := setICERCell(f, SheetSensitivity, fmt.Sprintf("E%d", r), row.Range, row.Defined); err != nil {
			return err
		}
	}

	return f.SetColWidth(SheetSensitivity, "A", "B", 28)
}

func (e *Exporter) fillBaseICERSheet(f *excelize.File, headerStyle int) error {
	if err := writeHeaderRow(f, SheetBaseICER, []string{"基准 ICER（元/QALY）"}, headerStyle); err != nil {
		return err
	}
	if err := setICERCell(f, SheetBaseICER, "A2", e.bundle.BaseICER.Value, e.bundle.BaseICER.Defined); err != nil {
		return err
	}
	return f.SetColWidth(SheetBaseICER, "A", "A", 24)
}

func (e *Exporter) fillSummarySheet(f *excelize.File, headerStyle int) error {
	headers := []string{"治疗组", "期望成本（元）", "期望 QALY"}
	if err := writeHeaderRow(f, SheetSummary, headers, headerStyle); err != nil {
		return err
	}

	for i, row := range e.bundle.Summary {
		r := 2 + i
		if err := setCellValue(f, SheetSummary, fmt.Sprintf("A%d", r), row.Label); err != nil {
			return err
		}
		if err := setCellValue(f, SheetSummary, fmt.Sprintf("B%d", r), row.Cost); err != nil {
			return err
		}
		if err := setCellValue(f, SheetSummary, fmt.Sprintf("C%d", r), row.QALY); err != nil {
			return err
		}
	}

	return f.SetColWidth(SheetSummary, "A", "C", 18)
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string, styleID int) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := setCellValue(f, sheet, cell, h); err != nil {
			return err
		}
	}
	lastCell, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", lastCell, styleID)
}

// setICERCell 写入 ICER 数值；无定义时写入占位文本，绝不导出 ±Inf/NaN
func setICERCell(f *excelize.File, sheet, cell string, value float64, defined bool) error {
	if !defined {
		return setCellValue(f, sheet, cell, undefinedCell)
	}
	return setCellValue(f, sheet, cell, value)
}

func setCellValue(f *excelize.File, sheet, cell string, value interface{}) error {
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("写入 %s!%s 失败: %w", sheet, cell, err)
	}
	return nil
}
