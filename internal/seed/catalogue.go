package seed

import "github.com/noah-isme/msp-aci-api/internal/models"

// Indicators is the ACI catalogue for a multi-professional practice. Core
// indicators come first so they receive the lowest ids.
var Indicators = []models.Indicator{
	{
		Code:            "AS01",
		Name:            "Horaires d'ouverture et soins non programmés",
		Description:     "Amplitude horaire d'ouverture et accès à des soins non programmés chaque jour ouvré",
		Type:            models.IndicatorTypeCore,
		Objective:       "100%",
		MaxCompensation: 4000,
	},
	{
		Code:            "AS02",
		Name:            "Réponse aux crises sanitaires graves",
		Description:     "Rédaction d'un plan de préparation à la réponse de crise sanitaire et mise en œuvre d'actions",
		Type:            models.IndicatorTypeCore,
		Objective:       "Rédaction du plan (prérequis) + actions en cas de crise",
		MaxCompensation: 2250,
	},
	{
		Code:            "CS01",
		Name:            "Fonction de coordination",
		Description:     "Mise en place d'une fonction de coordination bien identifiée et temps dédié",
		Type:            models.IndicatorTypeCore,
		Objective:       "Temps dédié à la coordination et outils disponibles",
		MaxCompensation: 7000,
	},
	{
		Code:            "CS02",
		Name:            "Protocoles pluriprofessionnels",
		Description:     "Élaboration et mise en œuvre de protocoles pluriprofessionnels pour la prise en charge de patients à risque de fragilité",
		Type:            models.IndicatorTypeCore,
		Objective:       "Min. 8 protocoles",
		MaxCompensation: 5000,
	},
	{
		Code:            "CS03",
		Name:            "Concertation pluriprofessionnelle",
		Description:     "Organisation de réunions de concertation pluriprofessionnelles sur les dossiers patients",
		Type:            models.IndicatorTypeCore,
		Objective:       "Min. 12 réunions/an",
		MaxCompensation: 5000,
	},
	{
		Code:            "SI01",
		Name:            "Système d'information niveau standard",
		Description:     "Système d'information conforme au référentiel établi par l'ANS (niveau standard)",
		Type:            models.IndicatorTypeCore,
		Objective:       "Utilisation par tous les professionnels",
		MaxCompensation: 4000,
	},
	{
		Code:            "AO01",
		Name:            "Diversité des services de soins",
		Description:     "Offre d'une diversité de services de soins médicaux spécialisés ou de pharmaciens et/ou de soins paramédicaux",
		Type:            models.IndicatorTypeOptional,
		Objective:       "Diversité des catégories de professionnels",
		MaxCompensation: 2250,
	},
	{
		Code:            "AO02",
		Name:            "Consultations de spécialistes",
		Description:     "Consultations de spécialistes de second recours ou sages-femmes ou chirurgiens-dentistes ou pharmaciens vacataires",
		Type:            models.IndicatorTypeOptional,
		Objective:       "Organisation effective",
		MaxCompensation: 1000,
	},
	{
		Code:            "AO03",
		Name:            "Accueil de médecins en CSTM",
		Description:     "Accueil de médecins intervenant dans la structure dans le cadre d'un Contrat de Solidarité Territoriale Médecin",
		Type:            models.IndicatorTypeOptional,
		Objective:       "Présence effective d'un médecin en CSTM",
		MaxCompensation: 1000,
	},
	{
		Code:            "AO04",
		Name:            "Missions de santé publique",
		Description:     "Participation à des missions de santé publique (vaccination, dépistage, prévention, etc.)",
		Type:            models.IndicatorTypeOptional,
		Objective:       "Min. 4 missions",
		MaxCompensation: 1750,
	},
	{
		Code:            "AO05",
		Name:            "Implication des usagers",
		Description:     "Mise en place d'une démarche d'implication des usagers",
		Type:            models.IndicatorTypeOptional,
		Objective:       "Démarche effective",
		MaxCompensation: 1000,
	},
	{
		Code:            "AO06",
		Name:            "SAS - Service d'Accès aux Soins",
		Description:     "Soins non programmés en lien avec le dispositif de Service d'Accès aux Soins",
		Type:            models.IndicatorTypeOptional,
		Objective:       "Participation effective au SAS",
		MaxCompensation: 1250,
	},
	{
		Code:            "CO01",
		Name:            "Formation professionnels de santé",
		Description:     "Accueil et formation de professionnels de santé (stagiaires médicaux et paramédicaux)",
		Type:            models.IndicatorTypeOptional,
		Objective:       "Accueil effectif de stagiaires",
		MaxCompensation: 2500,
	},
	{
		Code:            "CO02",
		Name:            "Coordination externe",
		Description:     "Coordination avec acteurs médico-sociaux et sociaux (EHPAD, SSIAD, etc.)",
		Type:            models.IndicatorTypeOptional,
		Objective:       "Min. 4 partenariats formalisés",
		MaxCompensation: 2000,
	},
	{
		Code:            "CO03",
		Name:            "Démarche qualité",
		Description:     "Mise en place d'une démarche d'évaluation et d'amélioration des pratiques",
		Type:            models.IndicatorTypeOptional,
		Objective:       "Démarche effective et formalisée",
		MaxCompensation: 2000,
	},
	{
		Code:            "CO04",
		Name:            "Protocoles soins non programmés",
		Description:     "Mise en place de protocoles nationaux de coopération pour les soins non programmés",
		Type:            models.IndicatorTypeOptional,
		Objective:       "Application effective des protocoles",
		MaxCompensation: 1750,
	},
	{
		Code:            "CO05",
		Name:            "Parcours insuffisance cardiaque",
		Description:     "Coordination d'un parcours insuffisance cardiaque avec télésurveillance",
		Type:            models.IndicatorTypeOptional,
		Objective:       "Min. 5 patients suivis",
		MaxCompensation: 2250,
	},
	{
		Code:            "CO06",
		Name:            "Parcours obésité enfant",
		Description:     "Coordination d'un parcours 'surpoids ou obésité de l'enfant'",
		Type:            models.IndicatorTypeOptional,
		Objective:       "Parcours formalisé et effectif",
		MaxCompensation: 2000,
	},
	{
		Code:            "SIO1",
		Name:            "Système d'information niveau avancé",
		Description:     "Système d'information conforme au référentiel établi par l'ANS (niveau avancé)",
		Type:            models.IndicatorTypeOptional,
		Objective:       "Déploiement et utilisation effective",
		MaxCompensation: 2000,
	},
}

// Associates are the demo practice staff.
var Associates = []models.Associate{
	{FirstName: "Martin", LastName: "Dubois", Profession: models.ProfessionDoctor, Email: "martin.dubois@example.com", Phone: str("0123456789")},
	{FirstName: "Sophie", LastName: "Lefevre", Profession: models.ProfessionDoctor, Email: "sophie.lefevre@example.com", Phone: str("0234567890")},
	{FirstName: "Philippe", LastName: "Moreau", Profession: models.ProfessionPharmacist, Email: "philippe.moreau@example.com", Phone: str("0345678901")},
}

// MissionFixture references its associate by position in Associates and its
// indicator by code, so fixtures survive catalogue reordering.
type MissionFixture struct {
	Associate     int
	IndicatorCode string
	Status        models.MissionStatus
	CurrentValue  string
	Compensation  int
	Notes         string
}

// Missions are the demo assignments.
var Missions = []MissionFixture{
	{0, "AS01", models.MissionStatusValidated, "41h/semaine", 4000, "Amplitude horaire respectée et soins non programmés disponibles"},
	{0, "CS01", models.MissionStatusValidated, "10h par semaine", 7000, "Temps dédié à la coordination bien défini et occupé par l'associé"},
	{0, "CO01", models.MissionStatusInProgress, "1 stagiaire", 0, "Un stagiaire en médecine générale accueilli, en attente d'un second"},
	{1, "AS02", models.MissionStatusValidated, "Plan rédigé et mis en œuvre", 2250, "Plan de crise rédigé et une intervention lors d'un pic épidémique"},
	{1, "CS02", models.MissionStatusValidated, "9 protocoles", 5000, "Protocoles bien documentés et mis en œuvre"},
	{1, "CO02", models.MissionStatusNotValidated, "2 partenariats", 0, "Partenariats avec EHPAD et SSIAD, mais nombre insuffisant"},
	{2, "CS03", models.MissionStatusValidated, "15 réunions", 5000, "Réunions régulières documentées avec compte-rendus"},
	{2, "AO01", models.MissionStatusInProgress, "4 catégories", 0, "Médecins, pharmaciens, infirmiers et kinés disponibles"},
	{2, "SI01", models.MissionStatusValidated, "Déployé et utilisé par tous", 4000, "Logiciel conforme au référentiel ANS et utilisé par 100% des professionnels"},
}

func str(s string) *string { return &s }
