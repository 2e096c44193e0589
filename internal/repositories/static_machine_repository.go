package repository

import (
	"context"
	"slices"
	"strings"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
)

type staticMachineRepository struct {
	machines []models.Machine
}

// NewStaticMachineRepo serves a fixed catalog from memory. A nil slice
// selects the built-in seed.
func NewStaticMachineRepo(machines []models.Machine) MachineRepository {
	if machines == nil {
		machines = SeedMachines()
	}

	return &staticMachineRepository{machines: machines}
}

func (r *staticMachineRepository) GetMachineByID(_ context.Context, id int) (*models.Machine, error) {
	for _, machine := range r.machines {
		if machine.ID == id {
			return cloneMachine(machine), nil
		}
	}

	return nil, ErrMachineNotFound
}

func (r *staticMachineRepository) ListMachines(_ context.Context, filter models.MachineFilter) ([]*models.Machine, int, error) {
	filter = filter.Normalized()
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	matched := []*models.Machine{}

	for _, machine := range r.machines {
		if search != "" && !strings.Contains(strings.ToLower(machine.Name), search) {
			continue
		}

		if len(filter.Categories) > 0 && !slices.Contains(filter.Categories, machine.Category) {
			continue
		}

		if filter.YearFrom > 0 && machine.Year < filter.YearFrom {
			continue
		}

		if filter.YearTo > 0 && machine.Year > filter.YearTo {
			continue
		}

		matched = append(matched, cloneMachine(machine))
	}

	total := len(matched)
	start := min(filter.Offset(), total)
	end := min(start+filter.PageSize, total)

	return matched[start:end], total, nil
}

func (r *staticMachineRepository) ListCategories(_ context.Context) ([]models.CategoryCount, error) {
	counts := map[string]int{}
	for _, machine := range r.machines {
		counts[machine.Category]++
	}

	return categoryCounts(counts), nil
}

func cloneMachine(m models.Machine) *models.Machine {
	m.Specifications = slices.Clone(m.Specifications)
	m.Tags = slices.Clone(m.Tags)

	return &m
}

const placeholderImage = "/placeholder.svg?height=300&width=400"

// SeedMachines returns the launch catalog.
func SeedMachines() []models.Machine {
	return []models.Machine{
		{
			ID: 1, Name: "Moinho de Bolas MB-2000", Category: "Moagem", Brand: "TechMill", Model: "MB-2000", Year: 2022, Power: "150HP",
			Image:          placeholderImage,
			Description:    "Moinho de bolas para processamento de materiais industriais com alta eficiência e durabilidade.",
			Specifications: []string{"Capacidade: 2000kg/h", "Potência: 150HP", "Diâmetro: 2.5m", "Peso: 15 ton"},
			Tags:           []string{"Arroz e Milho"},
		},
		{
			ID: 2, Name: "Guilhotina Industrial GI-3000", Category: "Limpeza", Brand: "CutPro", Model: "GI-3000", Year: 2021, Power: "75HP",
			Image:          placeholderImage,
			Description:    "Guilhotina de alta precisão para cortes industriais de grande porte com sistema CNC.",
			Specifications: []string{"Corte máximo: 3000mm", "Força: 200 ton", "Precisão: ±0.1mm", "Peso: 8 ton"},
			Tags:           []string{"Farelo e Impurezas"},
		},
		{
			ID: 3, Name: "Filtro de Manga FM-500", Category: "Aspiração e Pneumático", Brand: "FilterMax", Model: "FM-500", Year: 2023, Power: "25HP",
			Image:          placeholderImage,
			Description:    "Sistema de filtração por manga para controle eficiente de particulados industriais.",
			Specifications: []string{"Vazão: 500m³/min", "Eficiência: 99.9%", "Área filtrante: 200m²", "Peso: 3 ton"},
			Tags:           []string{"Limpeza"},
		},
		{
			ID: 4, Name: "Cilindro Hidráulico CH-1000", Category: "Aparelho Magnético", Brand: "HydroPower", Model: "CH-1000", Year: 2020, Power: "100HP",
			Image:          placeholderImage,
			Description:    "Cilindro hidráulico de alta pressão para aplicações industriais pesadas.",
			Specifications: []string{"Pressão: 350 bar", "Curso: 1000mm", "Diâmetro: 200mm", "Peso: 2.5 ton"},
			Tags:           []string{"Mistura"},
		},
		{
			ID: 5, Name: "Transportador Helicoidal TH-800", Category: "Transportadores", Brand: "ConveyTech", Model: "TH-800", Year: 2022, Power: "50HP",
			Image:          placeholderImage,
			Description:    "Transportador helicoidal para movimentação de materiais granulados e em pó.",
			Specifications: []string{"Capacidade: 800 ton/h", "Comprimento: 15m", "Diâmetro: 400mm", "Peso: 4 ton"},
			Tags:           []string{"Armazenagem"},
		},
		{
			ID: 6, Name: "Serra Circular SC-1200", Category: "Limpeza", Brand: "SawMaster", Model: "SC-1200", Year: 2019, Power: "120HP",
			Image:          placeholderImage,
			Description:    "Serra circular industrial para corte de madeiras de grande porte com alta precisão.",
			Specifications: []string{"Diâmetro lâmina: 1200mm", "Corte máximo: 400mm", "Velocidade: 3000 RPM", "Peso: 6 ton"},
			Tags:           []string{"Farelo e Impurezas"},
		},
		{
			ID: 7, Name: "Elevador de Canecas EC-500", Category: "Transportadores", Brand: "ElevaTech", Model: "EC-500", Year: 2023, Power: "30HP",
			Image:          placeholderImage,
			Description:    "Elevador de canecas para transporte vertical de grãos e materiais granulados.",
			Specifications: []string{"Capacidade: 500 ton/h", "Altura: 25m", "Velocidade: 2.5 m/s", "Peso: 5 ton"},
			Tags:           []string{"Arroz e Milho", "Recepção"},
		},
		{
			ID: 8, Name: "Silo de Armazenagem SA-10000", Category: "Armazenagem", Brand: "StoragePro", Model: "SA-10000", Year: 2021, Power: "5HP",
			Image:          placeholderImage,
			Description:    "Silo metálico para armazenagem de grãos com sistema de aeração e monitoramento de temperatura.",
			Specifications: []string{"Capacidade: 10000 ton", "Diâmetro: 15m", "Altura: 20m", "Peso: 25 ton"},
			Tags:           []string{"Arroz e Milho"},
		},
		{
			ID: 9, Name: "Ensacadeira Automática EA-100", Category: "Ensacamento", Brand: "PackTech", Model: "EA-100", Year: 2022, Power: "10HP",
			Image:          placeholderImage,
			Description:    "Ensacadeira automática para produtos granulados com sistema de pesagem eletrônica.",
			Specifications: []string{"Capacidade: 100 sacos/h", "Peso: 1.5 ton", "Precisão: ±0.1%", "Tamanho de saco: 10-50kg"},
			Tags:           []string{"Arroz e Milho"},
		},
		{
			ID: 10, Name: "Separador Magnético SM-200", Category: "Aparelho Magnético", Brand: "MagTech", Model: "SM-200", Year: 2023, Power: "5HP",
			Image:          placeholderImage,
			Description:    "Separador magnético para remoção de partículas metálicas em fluxos de grãos.",
			Specifications: []string{"Capacidade: 200 ton/h", "Campo magnético: 10000 Gauss", "Peso: 0.8 ton"},
			Tags:           []string{"Limpeza", "Arroz e Milho"},
		},
		{
			ID: 11, Name: "Misturador Horizontal MH-500", Category: "Mistura", Brand: "MixTech", Model: "MH-500", Year: 2021, Power: "40HP",
			Image:          placeholderImage,
			Description:    "Misturador horizontal para homogeneização de rações e produtos granulados.",
			Specifications: []string{"Capacidade: 500kg/lote", "Tempo de mistura: 3-5min", "Peso: 2 ton"},
			Tags:           []string{"Farelo e Impurezas"},
		},
		{
			ID: 12, Name: "Compressor de Ar CA-100", Category: "Aspiração e Pneumático", Brand: "AirTech", Model: "CA-100", Year: 2022, Power: "100HP",
			Image:          placeholderImage,
			Description:    "Compressor de ar industrial para sistemas pneumáticos de alta demanda.",
			Specifications: []string{"Capacidade: 100 m³/min", "Pressão: 10 bar", "Peso: 1.2 ton"},
			Tags:           []string{},
		},
		{
			ID: 13, Name: "Balança Rodoviária BR-80", Category: "Recepção", Brand: "WeighTech", Model: "BR-80", Year: 2023, Power: "2HP",
			Image:          placeholderImage,
			Description:    "Balança rodoviária para pesagem de caminhões e controle de recepção de grãos.",
			Specifications: []string{"Capacidade: 80 ton", "Precisão: ±20kg", "Plataforma: 18m x 3m", "Peso: 12 ton"},
			Tags:           []string{"Arroz e Milho"},
		},
		{
			ID: 14, Name: "Peneira Vibratória PV-300", Category: "Limpeza", Brand: "CleanTech", Model: "PV-300", Year: 2022, Power: "15HP",
			Image:          placeholderImage,
			Description:    "Peneira vibratória para separação e limpeza de grãos e materiais granulados.",
			Specifications: []string{"Capacidade: 300 ton/h", "Área de peneiramento: 6m²", "Vibração: 1800 RPM", "Peso: 3.5 ton"},
			Tags:           []string{"Farelo e Impurezas", "Arroz e Milho"},
		},
		{
			ID: 15, Name: "Moinho de Martelos MM-1500", Category: "Moagem", Brand: "HammerTech", Model: "MM-1500", Year: 2023, Power: "200HP",
			Image:          placeholderImage,
			Description:    "Moinho de martelos para trituração de grãos e materiais diversos com alta capacidade.",
			Specifications: []string{"Capacidade: 1500kg/h", "Potência: 200HP", "Rotação: 3600 RPM", "Peso: 8 ton"},
			Tags:           []string{"Farelo e Impurezas"},
		},
		{
			ID: 16, Name: "Misturador Vertical MV-800", Category: "Mistura", Brand: "VertMix", Model: "MV-800", Year: 2022, Power: "60HP",
			Image:          placeholderImage,
			Description:    "Misturador vertical para homogeneização de ingredientes em lotes de grande volume.",
			Specifications: []string{"Capacidade: 800kg/lote", "Tempo de mistura: 2-4min", "Altura: 4m", "Peso: 3.5 ton"},
			Tags:           []string{"Arroz e Milho"},
		},
	}
}
