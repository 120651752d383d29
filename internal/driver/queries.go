package driver

const (
	SaveInstitutionQuery = `
		MERGE (i:Institution {key: $key})
		ON CREATE SET i.uuid = $uuid, i.created_at = $created_at
		SET i.name = $name,
			i.aliases = $aliases,
			i.municipality = $municipality,
			i.department = $department,
			i.sector = $sector,
			i.level = $level,
			i.dane_code = $dane_code,
			i.updated_at = $created_at
		RETURN i.uuid AS uuid
	`

	ListInstitutionsQuery = `
		MATCH (i:Institution)
		RETURN i.name AS name,
			i.aliases AS aliases,
			i.municipality AS municipality,
			i.department AS department,
			i.sector AS sector,
			i.level AS level,
			i.dane_code AS dane_code
		ORDER BY i.created_at ASC
	`

	DeleteInstitutionQuery = `
		MATCH (i:Institution {key: $key})
		DETACH DELETE i
	`
)
