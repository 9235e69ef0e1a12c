package apperrors

// Locale selects the language of classified messages.
type Locale string

const (
	LocaleEnglish  Locale = "en"
	LocaleJapanese Locale = "ja"
)

// ParseLocale returns the matching Locale, defaulting to English.
func ParseLocale(raw string) Locale {
	switch Locale(raw) {
	case LocaleJapanese:
		return LocaleJapanese
	default:
		return LocaleEnglish
	}
}

func genericMessage(l Locale) string {
	if l == LocaleJapanese {
		return "予期せぬエラーが発生しました。時間をおいて再度お試しください。"
	}
	return "An unexpected error occurred. Please try again later."
}

func operationMessage(l Locale, op OperationCode) (string, bool) {
	ja := l == LocaleJapanese
	switch op {
	case OpCreateSighting:
		if ja {
			return "投稿に失敗しました。再度お試しください。", true
		}
		return "Could not submit the sighting. Please try again.", true
	case OpFetchPublicSightings:
		if ja {
			return "目撃情報の取得に失敗しました。", true
		}
		return "Could not load sightings.", true
	case OpFetchAllSightings:
		if ja {
			return "投稿データの取得に失敗しました。", true
		}
		return "Could not load submitted sightings.", true
	case OpUpdateSighting:
		if ja {
			return "投稿の更新に失敗しました。再度お試しください。", true
		}
		return "Could not update the sighting. Please try again.", true
	case OpReviewSighting:
		if ja {
			return "投稿レビューの登録に失敗しました。再度お試しください。", true
		}
		return "Could not record the review. Please try again.", true
	case OpUnknown:
		return genericMessage(l), true
	default:
		return "", false
	}
}

func storageMessage(l Locale, code StorageCode) (string, bool) {
	ja := l == LocaleJapanese
	switch code {
	case StoragePermissionDenied:
		if ja {
			return "この操作を行う権限がありません。", true
		}
		return "You do not have permission to perform this action.", true
	case StorageUnauthenticated:
		if ja {
			return "認証が必要です。再度ログインしてください。", true
		}
		return "Your session is not authenticated. Please sign in again.", true
	case StorageUnavailable:
		if ja {
			return "サービスに接続できません。通信環境を確認して再度お試しください。", true
		}
		return "The service is temporarily unavailable. Check your connection and try again.", true
	case StorageDeadlineExceeded:
		if ja {
			return "処理がタイムアウトしました。再度お試しください。", true
		}
		return "The request timed out. Please try again.", true
	case StorageResourceExhausted:
		if ja {
			return "アクセスが集中しています。しばらくしてから再度お試しください。", true
		}
		return "The service is busy. Please try again in a moment.", true
	case StorageAborted:
		if ja {
			return "他の操作と競合しました。再度お試しください。", true
		}
		return "The change conflicted with another update. Please try again.", true
	case StorageNotFound:
		if ja {
			return "対象のデータが見つかりません。", true
		}
		return "The requested record could not be found.", true
	case StorageUnknown:
		return "", false
	default:
		return "", false
	}
}

func identityMessage(l Locale, code IdentityCode) (string, bool) {
	ja := l == LocaleJapanese
	switch code {
	case IdentityInvalidCredential:
		if ja {
			return "メールアドレスまたはパスワードが間違っています。", true
		}
		return "The email address or password is incorrect.", true
	case IdentityUserDisabled:
		if ja {
			return "このアカウントは無効化されています。", true
		}
		return "This account has been disabled.", true
	case IdentityTooManyRequests:
		if ja {
			return "試行回数が多すぎます。しばらくしてから再度お試しください。", true
		}
		return "Too many attempts. Please wait and try again.", true
	case IdentityTokenExpired:
		if ja {
			return "ログインの有効期限が切れました。再度ログインしてください。", true
		}
		return "Your session has expired. Please sign in again.", true
	case IdentityInvalidToken, IdentityMissingToken:
		if ja {
			return "ログインが必要です。", true
		}
		return "Please sign in to continue.", true
	case IdentityUnknown:
		return "", false
	default:
		return "", false
	}
}
