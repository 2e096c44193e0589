package templates_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	receivedAt = time.Date(2024, 3, 12, 17, 30, 5, 0, time.UTC)
	saoPaulo   = time.FixedZone("BRT", -3*60*60)
	sender     = templates.Sender{Name: "IndustrialParts", Email: "contato@industrialparts.com", Phone: "(11) 1234-5678"}
)

func baseSummary() templates.Summary {
	items := []models.CartItem{
		{
			ID:                 "1-1710264605000-abc123def",
			MachineID:          1,
			MachineName:        "Moinho de Bolas MB-2000",
			MachineBrand:       "TechMill",
			MachineModel:       "MB-2000",
			PartCategories:     []string{"Rolamentos e Mancais", "Motores e Redutores"},
			ProblemDescription: "ruído excessivo",
			Urgency:            models.UrgencyHigh,
			AddedAt:            receivedAt.Add(-time.Hour),
		},
	}

	view := &models.CartView{
		Items:                items,
		ItemCount:            1,
		TotalMachines:        1,
		CriticalCount:        0,
		ExpectedResponseTime: "12-24 horas",
	}

	contact := models.ContactData{
		FullName: "Ana Souza",
		Company:  "Mineração Serra Azul",
		Email:    "ana@serraazul.com.br",
		Phone:    "(31) 99999-0000",
		City:     "Belo Horizonte",
		State:    "MG",
		ZipCode:  "30110-000",
	}

	return templates.NewSummary(view, contact, receivedAt, sender, saoPaulo)
}

func TestRenderHTML(t *testing.T) {
	r := templates.MustNewRenderer()

	t.Run("Required sections", func(t *testing.T) {
		html, err := r.RenderHTML(baseSummary())
		require.NoError(t, err)

		assert.Contains(t, html, "Nova Solicitação de Peças Industriais")
		assert.Contains(t, html, "Solicitação recebida em 12/03/2024 14:30:05")
		assert.Contains(t, html, "<strong>Total de solicitações:</strong> 1")
		assert.Contains(t, html, "<strong>Tempo de resposta esperado:</strong> 12-24 horas")
		assert.Contains(t, html, "Ana Souza")
		assert.Contains(t, html, `class="machine-item urgency-high"`)
		assert.Contains(t, html, `<span class="badge badge-high">Alta</span>`)
		assert.Contains(t, html, "<li>Rolamentos e Mancais</li>")
		assert.Contains(t, html, `"ruído excessivo"`)
		assert.Contains(t, html, "Adicionado:</strong> 12/03/2024 13:30:05")
		assert.Contains(t, html, "Entraremos em contato em até 24 horas")
		assert.Contains(t, html, "Não obrigatório")
		assert.Contains(t, html, "contato@industrialparts.com | (11) 1234-5678")
	})

	t.Run("Optional lines are omitted when empty", func(t *testing.T) {
		html, err := r.RenderHTML(baseSummary())
		require.NoError(t, err)

		assert.NotContains(t, html, "WhatsApp")
		assert.NotContains(t, html, "Orçamento máximo")
		assert.NotContains(t, html, "Prazo desejado")
		assert.NotContains(t, html, "Número de Série")
		assert.NotContains(t, html, "Horas de Uso")
	})

	t.Run("Optional lines are shown when present", func(t *testing.T) {
		s := baseSummary()
		s.Contact.WhatsApp = "(31) 98888-0000"
		s.Contact.MaxBudget = "R$ 50.000"
		s.Contact.PreferCertified = true
		s.Items[0].SerialNumber = "SN-778"
		s.Items[0].OperatingHours = "12000"

		html, err := r.RenderHTML(s)
		require.NoError(t, err)

		assert.Contains(t, html, "<strong>WhatsApp:</strong> (31) 98888-0000")
		assert.Contains(t, html, "<strong>Orçamento máximo:</strong> R$ 50.000")
		assert.Contains(t, html, "<strong>Número de Série:</strong> SN-778")
		assert.Contains(t, html, "<strong>Horas de Uso:</strong> 12000h")
		assert.NotContains(t, html, "Ano de Fabricação")
		assert.Contains(t, html, "certificadas:</strong> Sim")
	})

	t.Run("Critical cart promises four hours", func(t *testing.T) {
		s := baseSummary()
		s.Items[0].Urgency = models.UrgencyCritical
		s.CriticalCount = 1
		s.ExpectedResponseTime = "2-4 horas"

		html, err := r.RenderHTML(s)
		require.NoError(t, err)

		assert.Contains(t, html, "Entraremos em contato em até 4 horas")
		assert.Contains(t, html, `<span class="badge badge-critical">Crítica</span>`)
	})

	t.Run("Visitor markup is neutralised", func(t *testing.T) {
		s := baseSummary()
		s.Items[0].ProblemDescription = `<script>alert("x")</script>vazamento & desgaste`
		s.Contact.FullName = `<b onmouseover="x">Ana</b>`

		html, err := r.RenderHTML(s)
		require.NoError(t, err)

		assert.NotContains(t, html, "<script>")
		assert.NotContains(t, html, "<b onmouseover")
		assert.Contains(t, html, "&lt;script&gt;alert(")
		assert.Contains(t, html, "vazamento &amp; desgaste")
		assert.NotContains(t, html, "&amp;amp;")
		assert.Contains(t, html, "<strong>Nome:</strong> &lt;b onmouseover=")
	})

	t.Run("Angle brackets in visitor text survive in both bodies", func(t *testing.T) {
		s := baseSummary()
		s.Items[0].ProblemDescription = "Folga no eixo <motor principal> e ruído"
		s.Contact.Company = "Serra <Azul> Ltda"

		html, err := r.RenderHTML(s)
		require.NoError(t, err)
		text, err := r.RenderText(s)
		require.NoError(t, err)

		assert.Contains(t, html, "Folga no eixo &lt;motor principal&gt; e ruído")
		assert.Contains(t, html, "Serra &lt;Azul&gt; Ltda")
		assert.Contains(t, text, "Folga no eixo <motor principal> e ruído")
		assert.Contains(t, text, "Serra <Azul> Ltda")
	})

	t.Run("Machine snapshot is escaped", func(t *testing.T) {
		s := baseSummary()
		s.Items[0].MachineName = "Moinho <MB>"

		html, err := r.RenderHTML(s)
		require.NoError(t, err)

		assert.Contains(t, html, "Moinho &lt;MB&gt;")
	})
}

func TestRenderText(t *testing.T) {
	r := templates.MustNewRenderer()

	t.Run("Numbered items separated by rule", func(t *testing.T) {
		s := baseSummary()
		second := s.Items[0]
		second.MachineID = 2
		second.MachineName = "Guilhotina Industrial GI-3000"
		second.ManufacturingYear = "2021"
		s.Items = append(s.Items, second)
		s.ItemCount = 2
		s.TotalMachines = 2

		text, err := r.RenderText(s)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(text, "NOVA SOLICITAÇÃO DE PEÇAS INDUSTRIAIS"))
		assert.Contains(t, text, "Data/Hora: 12/03/2024 14:30:05")
		assert.Contains(t, text, "• Total de solicitações: 2")
		assert.Contains(t, text, "• Máquinas diferentes: 2")
		assert.Contains(t, text, "1. Moinho de Bolas MB-2000")
		assert.Contains(t, text, "2. Guilhotina Industrial GI-3000")
		assert.Contains(t, text, "   Ano de Fabricação: 2021")
		assert.Contains(t, text, "      • Motores e Redutores")
		assert.Contains(t, text, "   Urgência: Alta")
		assert.Equal(t, 1, strings.Count(text, "\n---\n"))
		assert.Contains(t, text, "4. Entraremos em contato em até 24 horas")
		assert.True(t, strings.HasSuffix(text, "contato@industrialparts.com | (11) 1234-5678"))
	})

	t.Run("Plain text keeps characters as typed", func(t *testing.T) {
		s := baseSummary()
		s.Items[0].ProblemDescription = "vazamento & desgaste"

		text, err := r.RenderText(s)
		require.NoError(t, err)

		assert.Contains(t, text, `"vazamento & desgaste"`)
		assert.NotContains(t, text, "WhatsApp")
	})
}

func TestSubject(t *testing.T) {
	s := baseSummary()
	assert.Equal(t, "Nova Solicitação de Peças Industriais - Mineração Serra Azul (1 item)", templates.Subject(s))

	s.ItemCount = 3
	s.CriticalCount = 1
	assert.Equal(t, "[CRÍTICO] Nova Solicitação de Peças Industriais - Mineração Serra Azul (3 itens)", templates.Subject(s))
}

func TestNilLocationUsesUTC(t *testing.T) {
	s := baseSummary()
	s.Location = nil

	text, err := templates.MustNewRenderer().RenderText(s)
	require.NoError(t, err)

	assert.Contains(t, text, "Data/Hora: 12/03/2024 17:30:05")
}
