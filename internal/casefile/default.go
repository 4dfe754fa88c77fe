package casefile

// Default returns the built-in mansion case
func Default() *Case {
	return &Case{
		Title: "Detective Quest",
		Root:  "Hall",
		Rooms: []RoomDef{
			{Name: "Hall", Clue: "Pegadas de lama", Left: "Living Room", Right: "Library"},
			{Name: "Living Room", Clue: "Lençol manchado", Left: "Kitchen", Right: "Garden"},
			{Name: "Library", Clue: "Livro com página faltando", Left: "Office", Right: "Bedroom"},
			{Name: "Kitchen", Clue: "Panela com odor estranho"},
			{Name: "Garden", Clue: "Pegadas recentes perto do portão"},
			{Name: "Office", Clue: "Gaveta arrombada"},
			{Name: "Bedroom", Clue: "Chave perdida sob o tapete"},
		},
		Suspects: []SuspectDef{
			{Name: "Jardineiro"},
			{Name: "Camareira"},
			{Name: "Bibliotecário"},
			{Name: "Administrador"},
			{Name: "Cozinheiro"},
		},
		Evidence: []Evidence{
			{Clue: "Pegadas de lama", Suspect: "Jardineiro"},
			{Clue: "Lençol manchado", Suspect: "Camareira"},
			{Clue: "Panela com odor estranho", Suspect: "Camareira"},
			{Clue: "Pegadas recentes perto do portão", Suspect: "Jardineiro"},
			{Clue: "Livro com página faltando", Suspect: "Bibliotecário"},
			{Clue: "Gaveta arrombada", Suspect: "Bibliotecário"},
			{Clue: "Chave perdida sob o tapete", Suspect: "Bibliotecário"},
		},
	}
}
