package schema

import "github.com/SayMoreX/digame/internal/field"

// IMDI controlled vocabulary URLs referenced by field definitions.
const (
	VocabContinents   = "http://www.mpi.nl/IMDI/Schema/Continents.xml"
	VocabCountries    = "http://www.mpi.nl/IMDI/Schema/Countries.xml"
	VocabGenre        = "http://www.mpi.nl/IMDI/Schema/Content-Genre.xml"
	VocabSubGenre     = "http://www.mpi.nl/IMDI/Schema/Content-SubGenre.xml"
	VocabInvolvement  = "http://www.mpi.nl/IMDI/Schema/Content-Involvement.xml"
	VocabPlanningType = "http://www.mpi.nl/IMDI/Schema/Content-PlanningType.xml"
	VocabSocialCtx    = "http://www.mpi.nl/IMDI/Schema/Content-SocialContext.xml"
)

var projectFields = []*field.FieldDefinition{
	{Key: "title", EnglishLabel: "Title", Type: field.TypeText, Persist: true, XmlTag: "Title"},
	{Key: "collectionDescription", EnglishLabel: "Description", Type: field.TypeText, Persist: true},
	{Key: "collectionSubjectLanguages", EnglishLabel: "Subject Languages", Type: field.TypeText, Persist: true, XmlTag: "CollectionSubjectLanguages"},
	{Key: "collectionWorkingLanguages", EnglishLabel: "Working Languages", Type: field.TypeText, Persist: true, XmlTag: "CollectionWorkingLanguages"},
	{Key: "archiveConfigurationName", EnglishLabel: "Archive Configuration", Type: field.TypeText, Persist: true, XmlTag: "ArchiveConfigurationName"},
	{Key: "location", EnglishLabel: "Location", Type: field.TypeText, Persist: true, XmlTag: "Location"},
	{Key: "region", EnglishLabel: "Region", Type: field.TypeText, Persist: true, XmlTag: "Region"},
	{Key: "country", EnglishLabel: "Country", Type: field.TypeText, Persist: true, XmlTag: "Country",
		ImdiRange: VocabCountries},
	{Key: "continent", EnglishLabel: "Continent", Type: field.TypeText, Persist: true, XmlTag: "Continent",
		ImdiRange: VocabContinents, ImdiIsClosedVocabulary: true},
	{Key: "contactPerson", EnglishLabel: "Contact Person", Type: field.TypeText, Persist: true, XmlTag: "ContactPerson"},
	{Key: "fundingProjectTitle", EnglishLabel: "Funding Project Title", Type: field.TypeText, Persist: true, XmlTag: "FundingProjectTitle", IsAdditional: true},
	{Key: "depositor", EnglishLabel: "Depositor", Type: field.TypeText, Persist: true, XmlTag: "Depositor", IsAdditional: true},
	{Key: "rightsHolder", EnglishLabel: "Rights Holder", Type: field.TypeText, Persist: true, XmlTag: "RightsHolder", IsAdditional: true},
	{Key: "grantId", EnglishLabel: "Grant ID", Type: field.TypeText, Persist: true, XmlTag: "GrantId", IsAdditional: true},
	{Key: "accessProtocol", EnglishLabel: "Access Protocol", Type: field.TypeText, Persist: true, XmlTag: "AccessProtocol", Deprecated: true, OmitSave: true},
}

var sessionFields = []*field.FieldDefinition{
	{Key: "id", EnglishLabel: "ID", Type: field.TypeText, Persist: true},
	{Key: "title", EnglishLabel: "Title", Type: field.TypeText, Persist: true},
	{Key: "date", EnglishLabel: "Date", Type: field.TypeDate, Persist: true},
	{Key: "description", EnglishLabel: "Description", Type: field.TypeText, Persist: true},
	{Key: "genre", EnglishLabel: "Genre", Type: field.TypeText, Persist: true,
		ImdiRange: VocabGenre},
	{Key: "subgenre", EnglishLabel: "Sub-Genre", Type: field.TypeText, Persist: true,
		ImdiRange: VocabSubGenre},
	{Key: "participants", EnglishLabel: "Participants", Type: field.TypeText, Persist: true, OmitSave: true},
	{Key: "location", EnglishLabel: "Location", Type: field.TypeText, Persist: true},
	{Key: "access", EnglishLabel: "Access", Type: field.TypeText, Persist: true},
	{Key: "accessDescription", EnglishLabel: "Access Explanation", Type: field.TypeText, Persist: true},
	{Key: "keyword", EnglishLabel: "Keywords", Type: field.TypeText, Persist: true, ImdiIsOpenList: true},
	{Key: "involvement", EnglishLabel: "Involvement", Type: field.TypeText, Persist: true, IsAdditional: true,
		ImdiRange: VocabInvolvement, ImdiIsClosedVocabulary: true},
	{Key: "planningType", EnglishLabel: "Planning Type", Type: field.TypeText, Persist: true, IsAdditional: true,
		ImdiRange: VocabPlanningType, ImdiIsClosedVocabulary: true},
	{Key: "socialContext", EnglishLabel: "Social Context", Type: field.TypeText, Persist: true, IsAdditional: true,
		ImdiRange: VocabSocialCtx, ImdiIsClosedVocabulary: true},
	{Key: "locationRegion", EnglishLabel: "Region", Type: field.TypeText, Persist: true, IsAdditional: true},
	{Key: "locationCountry", EnglishLabel: "Country", Type: field.TypeText, Persist: true, IsAdditional: true,
		ImdiRange: VocabCountries},
	{Key: "locationContinent", EnglishLabel: "Continent", Type: field.TypeText, Persist: true, IsAdditional: true,
		ImdiRange: VocabContinents, ImdiIsClosedVocabulary: true},
	{Key: "setting", EnglishLabel: "Setting", Type: field.TypeText, Persist: true, IsAdditional: true},
	{Key: "situation", EnglishLabel: "Situation", Type: field.TypeText, Persist: true, IsAdditional: true, Deprecated: true},
	{Key: "status", EnglishLabel: "Status", Type: field.TypeText, Persist: true, OmitExport: true},
}

var personFields = []*field.FieldDefinition{
	{Key: "name", EnglishLabel: "Full Name", Type: field.TypeText, Persist: true},
	{Key: "nickname", EnglishLabel: "Nickname", Type: field.TypeText, Persist: true},
	{Key: "code", EnglishLabel: "Code", Type: field.TypeText, Persist: true},
	{Key: "languages", EnglishLabel: "Languages", Type: field.TypePersonLanguageList, Persist: true},
	{Key: "birthYear", EnglishLabel: "Birth Year", Type: field.TypeText, Persist: true},
	{Key: "gender", EnglishLabel: "Gender", Type: field.TypeText, Persist: true},
	{Key: "education", EnglishLabel: "Education", Type: field.TypeText, Persist: true},
	{Key: "primaryOccupation", EnglishLabel: "Primary Occupation", Type: field.TypeText, Persist: true},
	{Key: "description", EnglishLabel: "Description", Type: field.TypeText, Persist: true},
	{Key: "ethnicGroup", EnglishLabel: "Ethnic Group", Type: field.TypeText, Persist: true, IsAdditional: true},
	{Key: "howToContact", EnglishLabel: "How to Contact", Type: field.TypeText, Persist: true, IsAdditional: true, OmitExport: true},
}
