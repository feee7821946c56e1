package setup

const (
	EnvLogLevel    = "ARENASTATE_LOGLEVEL"
	EnvProviderUrl = "ARENASTATE_PROVIDER_URL"
	// EnvArena is deliberately absent from the hardhat template: when it is
	// not set the arena is deployed in process.
	EnvArena       = "ARENASTATE_ARENA"
	EnvDeployNonce = "ARENASTATE_DEPLOY_NONCE"
	EnvApiIpPort   = "ARENASTATE_API_IP_PORT"

	EnvDeployKey   = "ARENASTATE_DEPLOY_KEY"
	EnvOwnerKey    = "ARENASTATE_OWNER_KEY"
	EnvGuardianKey = "ARENASTATE_GUARDIAN_KEY"
	EnvUser1Key    = "ARENASTATE_USER1_KEY"
	EnvUser2Key    = "ARENASTATE_USER2_KEY"
	EnvUser3Key    = "ARENASTATE_USER3_KEY"
	EnvUser4Key    = "ARENASTATE_USER4_KEY"

	EnvNftStorageApiKey           = "ARENASTATE_NFTSTORAGE_API_KEY"
	EnvNftStorageUrl              = "ARENASTATE_NFTSTORAGE_URL"
	EnvNftStorageGameIconFilename = "ARENASTATE_NFTSTORAGE_GAME_ICON_FILENAME"

	EnvOpenAiApiKey      = "ARENASTATE_OPENAI_API_KEY"
	EnvOpenAiImagesUrl   = "ARENASTATE_OPENAI_IMAGES_URL"
	EnvOpenAiImagePrompt = "ARENASTATE_OPENAI_IMAGE_PROMPT"

	EnvMaptoolUrl         = "ARENASTATE_MAPTOOL_URL"
	EnvMaptoolImage       = "ARENASTATE_MAPTOOL_IMAGE"
	EnvMaptoolImageDigest = "ARENASTATE_MAPTOOL_IMAGE_DIGEST"

	EnvDstackTappdEndpoint = "DSTACK_TAPPD_ENDPOINT"

	// EnvDotenvFile names the env file read by Setup when no path is given.
	EnvDotenvFile = "ARENASTATE_DOTENV_FILE"
)

const (
	DefaultLogLevel    = "INFO"
	DefaultProviderUrl = "http://localhost:8545"
)

const (
	RoleDeploy   = "deploy"
	RoleOwner    = "owner"
	RoleGuardian = "guardian"
	RoleUser1    = "user1"
	RoleUser2    = "user2"
	RoleUser3    = "user3"
	RoleUser4    = "user4"
)

type roleKey struct {
	Role string
	Env  string
}

// roleKeys is in template order.
var roleKeys = []roleKey{
	{RoleDeploy, EnvDeployKey},
	{RoleOwner, EnvOwnerKey},
	{RoleGuardian, EnvGuardianKey},
	{RoleUser1, EnvUser1Key},
	{RoleUser2, EnvUser2Key},
	{RoleUser3, EnvUser3Key},
	{RoleUser4, EnvUser4Key},
}

// Roles lists the key roles in template order.
func Roles() []string {
	roles := make([]string, len(roleKeys))
	for i, rk := range roleKeys {
		roles[i] = rk.Role
	}
	return roles
}

// KnownNames lists every variable the configuration reads, in template order
// followed by the optional extras.
func KnownNames() []string {
	names := []string{EnvLogLevel, EnvProviderUrl, EnvArena}
	for _, rk := range roleKeys {
		names = append(names, rk.Env)
	}
	return append(names,
		EnvNftStorageApiKey,
		EnvOpenAiApiKey,
		EnvNftStorageUrl,
		EnvOpenAiImagesUrl,
		EnvMaptoolUrl,
		EnvMaptoolImage,
		EnvMaptoolImageDigest,
		EnvNftStorageGameIconFilename,
		EnvOpenAiImagePrompt,
		EnvDeployNonce,
		EnvApiIpPort,
	)
}
