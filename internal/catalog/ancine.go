package catalog

// Column sets mirror the ANCINE open-data tables loaded into the backend.

func exibidorColumns() []Column {
	return []Column{
		{Name: "registro_exibidor", Type: TypeString, PrimaryKey: true},
		{Name: "cnpj_exibidor", Type: TypeString},
		{Name: "nome_exibidor", Type: TypeString},
		{Name: "nome_grupo_exibidor", Type: TypeString},
		{Name: "situacao_exibidor", Type: TypeString},
	}
}

func complexoColumns() []Column {
	return []Column{
		{Name: "registro_complexo", Type: TypeString, PrimaryKey: true},
		{Name: "registro_exibidor_fk", Type: TypeString},
		{Name: "situacao_complexo", Type: TypeString},
		{Name: "data_situacao_complexo", Type: TypeDate},
		{Name: "website_complexo", Type: TypeString},
		{Name: "complexo_itinerante", Type: TypeBool},
		{Name: "tipo_operacao_usual", Type: TypeString},
		{Name: "endereco_complexo", Type: TypeString},
		{Name: "numero_endereco_complexo", Type: TypeString},
		{Name: "complemento_complexo", Type: TypeString},
		{Name: "bairro_complexo", Type: TypeString},
		{Name: "municipio_complexo", Type: TypeString},
		{Name: "uf_complexo", Type: TypeString},
		{Name: "cep_complexo", Type: TypeString},
	}
}

func salaColumns() []Column {
	return []Column{
		{Name: "registro_sala", Type: TypeString, PrimaryKey: true},
		{Name: "registro_complexo_fk", Type: TypeString},
		{Name: "nome_sala", Type: TypeString},
		{Name: "cnpj_sala", Type: TypeString},
		{Name: "situacao_sala", Type: TypeString},
		{Name: "data_situacao_sala", Type: TypeDate},
		{Name: "data_inicio_funcionamento", Type: TypeDate},
		{Name: "assentos_total", Type: TypeInt},
		{Name: "assentos_cadeirantes", Type: TypeInt},
		{Name: "assentos_mobilidade_reduzida", Type: TypeInt},
		{Name: "assentos_obesidade", Type: TypeInt},
		{Name: "acesso_assentos_rampa", Type: TypeBool},
		{Name: "acesso_sala_rampa", Type: TypeBool},
		{Name: "banheiros_acessiveis", Type: TypeBool},
	}
}

func obraColumns() []Column {
	return []Column{
		{Name: "cpb", Type: TypeString, PrimaryKey: true},
		{Name: "titulo_original", Type: TypeString},
		{Name: "data_emissao_cpb", Type: TypeDate},
		{Name: "situacao_obra", Type: TypeString},
		{Name: "tipo_obra", Type: TypeString},
		{Name: "subtipo_obra", Type: TypeString},
		{Name: "classificacao_obra", Type: TypeString},
		{Name: "organizacao_temporal", Type: TypeString},
		{Name: "duracao_total_minutos", Type: TypeFloat},
		{Name: "quantidade_episodios", Type: TypeInt},
		{Name: "ano_producao_inicial", Type: TypeInt},
		{Name: "ano_producao_final", Type: TypeInt},
		{Name: "segmento_destinacao_inicial", Type: TypeString},
		{Name: "coproducao_internacional", Type: TypeBool},
		{Name: "requerente", Type: TypeString},
		{Name: "cnpj_requerente", Type: TypeString},
		{Name: "uf_requerente", Type: TypeString},
		{Name: "municipio_requerente", Type: TypeString},
	}
}

func paisOrigemColumns() []Column {
	return []Column{
		{Name: "id", Type: TypeInt, PrimaryKey: true},
		{Name: "obra_cpb_fk", Type: TypeString},
		{Name: "pais_origem", Type: TypeString},
		{Name: "titulo_original_pais", Type: TypeString},
	}
}

func distribuidoraColumns() []Column {
	return []Column{
		{Name: "registro_distribuidora", Type: TypeInt, PrimaryKey: true},
		{Name: "cnpj_distribuidora", Type: TypeString},
		{Name: "razao_social_distribuidora", Type: TypeString},
	}
}

func lancamentoColumns() []Column {
	return []Column{
		{Name: "id", Type: TypeInt, PrimaryKey: true},
		{Name: "obra_cpb_fk", Type: TypeString},
		{Name: "registro_distribuidora_fk", Type: TypeInt},
		{Name: "cpb_roe", Type: TypeString},
		{Name: "titulo_original", Type: TypeString},
		{Name: "data_lancamento", Type: TypeDate},
		{Name: "ano_lancamento", Type: TypeInt},
		{Name: "tipo_obra", Type: TypeString},
		{Name: "pais_obra", Type: TypeString},
		{Name: "publico_total", Type: TypeInt},
		{Name: "renda_total", Type: TypeFloat},
	}
}

func filmagemColumns() []Column {
	return []Column{
		{Name: "id_filmagem", Type: TypeInt, PrimaryKey: true},
		{Name: "titulo_producao", Type: TypeString},
		{Name: "pais_origem", Type: TypeString},
		{Name: "uf_filmagem", Type: TypeString},
		{Name: "municipio_filmagem", Type: TypeString},
		{Name: "tipo_producao", Type: TypeString},
		{Name: "genero", Type: TypeString},
		{Name: "situacao", Type: TypeString},
		{Name: "ano_filmagem", Type: TypeInt},
	}
}

// Exhibition is the family behind the generic flat endpoint: direct table
// access to salas, complexos and exibidores without relation payloads.
func Exhibition() *Family {
	return newFamily("exhibition",
		&Resource{Name: "salas", Table: "salas", Columns: salaColumns()},
		&Resource{Name: "complexos", Table: "complexos", Columns: complexoColumns()},
		&Resource{Name: "exibidores", Table: "exibidores", Columns: exibidorColumns()},
	)
}

// SalaSearch is the joined salas resource: every sala belongs to a complexo,
// and a complexo may reference its exhibitor group.
func SalaSearch() *Resource {
	return &Resource{
		Name:    "salas",
		Table:   "salas",
		Columns: salaColumns(),
		Relations: []Relation{
			{
				Name:         "complexos",
				Table:        "complexos",
				LocalColumn:  "registro_complexo_fk",
				RemoteColumn: "registro_complexo",
				Required:     true,
				Columns:      complexoColumns(),
				Relations: []Relation{
					{
						Name:         "exibidores",
						Table:        "exibidores",
						LocalColumn:  "registro_exibidor_fk",
						RemoteColumn: "registro_exibidor",
						Columns:      exibidorColumns(),
					},
				},
			},
		},
	}
}

// ObraSearch is the joined obras resource carrying the countries-of-origin
// array for each work.
func ObraSearch() *Resource {
	return &Resource{
		Name:    "obras",
		Table:   "obras",
		Columns: obraColumns(),
		Relations: []Relation{
			{
				Name:         "paises_origem",
				Table:        "paises_origem",
				LocalColumn:  "cpb",
				RemoteColumn: "obra_cpb_fk",
				OneToMany:    true,
				Columns:      paisOrigemColumns(),
			},
		},
	}
}

// LancamentoSearch is the joined lancamentos resource. The distributor edge is
// mandatory; the obra edge stays optional because foreign releases carry no
// domestic work record and must surface with a null obras payload.
func LancamentoSearch() *Resource {
	return &Resource{
		Name:    "lancamentos",
		Table:   "lancamentos",
		Columns: lancamentoColumns(),
		Relations: []Relation{
			{
				Name:         "distribuidoras",
				Table:        "distribuidoras",
				LocalColumn:  "registro_distribuidora_fk",
				RemoteColumn: "registro_distribuidora",
				Required:     true,
				Columns:      distribuidoraColumns(),
			},
			{
				Name:         "obras",
				Table:        "obras",
				LocalColumn:  "obra_cpb_fk",
				RemoteColumn: "cpb",
				Columns:      obraColumns(),
			},
		},
	}
}

// FilmagemEstrangeira is the flat foreign-filming resource of the production
// family.
func FilmagemEstrangeira() *Resource {
	return &Resource{
		Name:    "filmagem_estrangeira",
		Table:   "filmagem_estrangeira",
		Columns: filmagemColumns(),
	}
}
