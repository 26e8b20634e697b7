package infra

// pdf.go gera a via impressa da comanda com go-pdf/fpdf.
// Formato 74×105mm (papel térmico): cabeçalho com o nome da casa, mesa e
// cliente, tabela de itens e total em destaque.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
)

// GerarComandaPDF escreve a via da comanda em storagePath (criado se preciso)
// e devolve o caminho absoluto do arquivo gerado.
func GerarComandaPDF(comanda *model.Comanda, nomeRestaurante, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: criar diretório: %w", err)
	}

	fileName := fmt.Sprintf("comanda_%s.pdf", comanda.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, nomeRestaurante, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Comanda", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Mesa %d - %s", comanda.MesaNumero, comanda.ClienteNome), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, comanda.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// Tabela de itens
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(contentW*0.55, 4, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.15, 4, "Qtd", "B", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.30, 4, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range comanda.Itens {
		nome := "-"
		if item.Prato != nil {
			nome = item.Prato.Nome
		}
		subtotal := item.ValorUnitario.Mul(decimal.NewFromInt(int64(item.Quantidade)))
		pdf.CellFormat(contentW*0.55, 4, nome, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.15, 4, fmt.Sprintf("%d", item.Quantidade), "", 0, "R", false, 0, "")
		pdf.CellFormat(contentW*0.30, 4, "R$ "+subtotal.StringFixed(2), "", 1, "R", false, 0, "")
		if item.Observacoes != "" {
			pdf.SetFont("Helvetica", "I", 6)
			pdf.CellFormat(contentW, 3, "  "+item.Observacoes, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 7)
		}
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, "TOTAL  R$ "+comanda.ValorTotal.StringFixed(2), "T", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: gravar arquivo: %w", err)
	}
	return filePath, nil
}
