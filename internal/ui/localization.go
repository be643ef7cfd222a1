package ui

import "github.com/deweydb/dewey/internal/toast"

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle      = "app_title"
	KeySettings      = "settings"
	KeyFile          = "file"
	KeyOpenConfigDir = "open_config_dir"
	KeyLanguage      = "language"
	KeyTheme         = "theme"
	KeyToastDelay    = "toast_delay"
	KeySave          = "save"
	KeyCancel        = "cancel"
	KeySettingsSaved = "settings_saved"
	KeyLoading       = "loading"
	KeyPageNotFound  = "page_not_found"

	KeySignIn          = "sign_in"
	KeySignUp          = "sign_up"
	KeySignOut         = "sign_out"
	KeyContinueWith    = "continue_with"
	KeyEmail           = "email"
	KeyPassword        = "password"
	KeyNoAccount       = "no_account"
	KeyHaveAccount     = "have_account"
	KeyWaitingBrowser  = "waiting_browser"
	KeyCompletingLogin = "completing_login"
	KeyOr              = "or"

	KeyOnboardingTitle   = "onboarding_title"
	KeyOnboardingIntro   = "onboarding_intro"
	KeyEncryptionKey     = "encryption_key"
	KeyKeyReady          = "key_ready"
	KeyKeyMissing        = "key_missing"
	KeyGenerateKey       = "generate_key"
	KeyFinishOnboarding  = "finish_onboarding"
	KeyCheckingKeyring   = "checking_keyring"
	KeyOnboardingSkipped = "onboarding_skipped"

	KeyProjects       = "projects"
	KeyNoProjects     = "no_projects"
	KeyCreateProject  = "create_project"
	KeyProjectCreated = "project_created"
	KeyCreatedAt      = "created_at"

	KeyProjectName          = "project_name"
	KeyDatabaseType         = "database_type"
	KeyHost                 = "host"
	KeyPort                 = "port"
	KeyUsername             = "username"
	KeyDatabase             = "database"
	KeyConnectionParameters = "connection_parameters"
	KeyConnectionString     = "connection_string"
	KeyParse                = "parse"
	KeyTestConnection       = "test_connection"
	KeyTesting              = "testing"
	KeyConnectionSucceeded  = "connection_succeeded"
	KeyConnectionFailed     = "connection_failed"
	KeyCreate               = "create"

	KeyBoundaryTitle = "boundary_title"
	KeyTryAgain      = "try_again"
	KeySetUpKey      = "set_up_key"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if text, ok := l.lookup(key); ok {
		return text
	}
	return key
}

// Translate returns localized text for key, or fallback when no language defines it
func (l *Localization) Translate(key, fallback string) string {
	if text, ok := l.lookup(key); ok {
		return text
	}
	return fallback
}

func (l *Localization) lookup(key string) (string, bool) {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text, true
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text, true
		}
	}
	return "", false
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:      "Dewey",
		KeySettings:      "Settings",
		KeyFile:          "File",
		KeyOpenConfigDir: "Open Config Folder",
		KeyLanguage:      "Language",
		KeyTheme:         "Theme",
		KeyToastDelay:    "Delay between notifications (ms)",
		KeySave:          "Save",
		KeyCancel:        "Cancel",
		KeySettingsSaved: "Settings saved successfully!",
		KeyLoading:       "Loading...",
		KeyPageNotFound:  "Page not found",

		KeySignIn:          "Sign in",
		KeySignUp:          "Sign up",
		KeySignOut:         "Sign out",
		KeyContinueWith:    "Continue with %s",
		KeyEmail:           "Email",
		KeyPassword:        "Password",
		KeyNoAccount:       "Don't have an account? Sign up",
		KeyHaveAccount:     "Already have an account? Sign in",
		KeyWaitingBrowser:  "Finish signing in with %s in your browser...",
		KeyCompletingLogin: "Completing sign in...",
		KeyOr:              "or",

		KeyOnboardingTitle:   "Welcome to Dewey",
		KeyOnboardingIntro:   "Dewey encrypts saved connection credentials with a key kept in your system keyring.",
		KeyEncryptionKey:     "Encryption key",
		KeyKeyReady:          "Your encryption key is stored in the system keyring.",
		KeyKeyMissing:        "No encryption key was found. Generate one to continue.",
		KeyGenerateKey:       "Generate Key",
		KeyFinishOnboarding:  "Get Started",
		KeyCheckingKeyring:   "Checking the system keyring...",
		KeyOnboardingSkipped: "Setup is already complete.",

		KeyProjects:       "Projects",
		KeyNoProjects:     "You have no projects yet.",
		KeyCreateProject:  "Create Project",
		KeyProjectCreated: "Project created",
		KeyCreatedAt:      "Created",

		KeyProjectName:          "Project name",
		KeyDatabaseType:         "Database type",
		KeyHost:                 "Host",
		KeyPort:                 "Port",
		KeyUsername:             "Username",
		KeyDatabase:             "Database",
		KeyConnectionParameters: "Parameters",
		KeyConnectionString:     "Connection string",
		KeyParse:                "Parse",
		KeyTestConnection:       "Test Connection",
		KeyTesting:              "Testing...",
		KeyConnectionSucceeded:  "Connection successful",
		KeyConnectionFailed:     "Connection failed",
		KeyCreate:               "Create",

		KeyBoundaryTitle: "Something went wrong",
		KeyTryAgain:      "Try Again",
		KeySetUpKey:      "Set Up Encryption Key",

		toast.KeyTitleEncryptionKey:  "Encryption Key Error",
		toast.KeyTitleFileNotFound:   "File Not Found",
		toast.KeyTitleDatabase:       "Database Error",
		toast.KeyTitleFileSystem:     "File System Error",
		toast.KeyTitleConfiguration:  "Configuration Error",
		toast.KeyTitleImage:          "Image Processing Error",
		toast.KeyTitleProject:        "Project Error",
		toast.KeyTitleProjectMissing: "Project Not Found",
		toast.KeyTitleConnection:     "Connection Error",
		toast.KeyTitleValidation:     "Validation Error",
		toast.KeyTitleAuth:           "Authentication Error",
		toast.KeyTitleEncryption:     "Encryption Error",
		toast.KeyTitleDefault:        "Error",
		toast.KeyActionSetUp:         "Set Up",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:      "Dewey",
		KeySettings:      "Настройки",
		KeyFile:          "Файл",
		KeyOpenConfigDir: "Открыть папку настроек",
		KeyLanguage:      "Язык",
		KeyTheme:         "Тема",
		KeyToastDelay:    "Пауза между уведомлениями (мс)",
		KeySave:          "Сохранить",
		KeyCancel:        "Отмена",
		KeySettingsSaved: "Настройки успешно сохранены!",
		KeyLoading:       "Загрузка...",
		KeyPageNotFound:  "Страница не найдена",

		KeySignIn:          "Войти",
		KeySignUp:          "Регистрация",
		KeySignOut:         "Выйти",
		KeyContinueWith:    "Продолжить через %s",
		KeyEmail:           "Email",
		KeyPassword:        "Пароль",
		KeyNoAccount:       "Нет аккаунта? Зарегистрируйтесь",
		KeyHaveAccount:     "Уже есть аккаунт? Войдите",
		KeyWaitingBrowser:  "Завершите вход через %s в браузере...",
		KeyCompletingLogin: "Завершение входа...",
		KeyOr:              "или",

		KeyOnboardingTitle:  "Добро пожаловать в Dewey",
		KeyEncryptionKey:    "Ключ шифрования",
		KeyKeyReady:         "Ключ шифрования хранится в системной связке ключей.",
		KeyKeyMissing:       "Ключ шифрования не найден. Создайте его, чтобы продолжить.",
		KeyGenerateKey:      "Создать ключ",
		KeyFinishOnboarding: "Начать",
		KeyCheckingKeyring:  "Проверка связки ключей...",

		KeyProjects:       "Проекты",
		KeyNoProjects:     "У вас пока нет проектов.",
		KeyCreateProject:  "Создать проект",
		KeyProjectCreated: "Проект создан",
		KeyCreatedAt:      "Создан",

		KeyProjectName:          "Название проекта",
		KeyDatabaseType:         "Тип базы данных",
		KeyHost:                 "Хост",
		KeyPort:                 "Порт",
		KeyUsername:             "Пользователь",
		KeyDatabase:             "База данных",
		KeyConnectionParameters: "Параметры",
		KeyConnectionString:     "Строка подключения",
		KeyParse:                "Разобрать",
		KeyTestConnection:       "Проверить подключение",
		KeyTesting:              "Проверка...",
		KeyConnectionSucceeded:  "Подключение успешно",
		KeyConnectionFailed:     "Не удалось подключиться",
		KeyCreate:               "Создать",

		KeyBoundaryTitle: "Что-то пошло не так",
		KeyTryAgain:      "Повторить",
		KeySetUpKey:      "Настроить ключ шифрования",

		toast.KeyTitleEncryptionKey: "Ошибка ключа шифрования",
		toast.KeyTitleDatabase:      "Ошибка базы данных",
		toast.KeyTitleConnection:    "Ошибка подключения",
		toast.KeyTitleValidation:    "Ошибка проверки",
		toast.KeyTitleAuth:          "Ошибка аутентификации",
		toast.KeyTitleDefault:       "Ошибка",
		toast.KeyActionSetUp:        "Настроить",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:      "Dewey",
		KeySettings:      "Configurações",
		KeyFile:          "Arquivo",
		KeyOpenConfigDir: "Abrir pasta de configuração",
		KeyLanguage:      "Idioma",
		KeyTheme:         "Tema",
		KeyToastDelay:    "Intervalo entre notificações (ms)",
		KeySave:          "Salvar",
		KeyCancel:        "Cancelar",
		KeySettingsSaved: "Configurações salvas com sucesso!",
		KeyLoading:       "Carregando...",
		KeyPageNotFound:  "Página não encontrada",

		KeySignIn:          "Entrar",
		KeySignUp:          "Cadastrar",
		KeySignOut:         "Sair",
		KeyContinueWith:    "Continuar com %s",
		KeyEmail:           "Email",
		KeyPassword:        "Senha",
		KeyNoAccount:       "Não tem conta? Cadastre-se",
		KeyHaveAccount:     "Já tem conta? Entre",
		KeyWaitingBrowser:  "Conclua o login com %s no navegador...",
		KeyCompletingLogin: "Concluindo login...",
		KeyOr:              "ou",

		KeyOnboardingTitle:  "Bem-vindo ao Dewey",
		KeyEncryptionKey:    "Chave de criptografia",
		KeyGenerateKey:      "Gerar Chave",
		KeyFinishOnboarding: "Começar",

		KeyProjects:       "Projetos",
		KeyNoProjects:     "Você ainda não tem projetos.",
		KeyCreateProject:  "Criar Projeto",
		KeyProjectCreated: "Projeto criado",
		KeyCreatedAt:      "Criado",

		KeyProjectName:         "Nome do projeto",
		KeyDatabaseType:        "Tipo de banco de dados",
		KeyTestConnection:      "Testar Conexão",
		KeyTesting:             "Testando...",
		KeyConnectionSucceeded: "Conexão bem-sucedida",
		KeyConnectionFailed:    "Falha na conexão",
		KeyCreate:              "Criar",

		KeyBoundaryTitle: "Algo deu errado",
		KeyTryAgain:      "Tentar Novamente",
		KeySetUpKey:      "Configurar Chave de Criptografia",

		toast.KeyTitleConnection: "Erro de Conexão",
		toast.KeyTitleDefault:    "Erro",
		toast.KeyActionSetUp:     "Configurar",
	}
}
